package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	scenarioName := flag.String("scenario", "boids", "scenario name in scenarios/ (basename, .yaml optional)")
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	seed := flag.Int64("seed", 0, "spawn and wander seed, overriding the scenario seed (0 keeps the scenario seed, or picks a random one)")
	dt := flag.Float64("dt", 1.0/60, "seconds per tick")
	flag.Parse()

	report, err := Run(Options{
		Scenario:  *scenarioName,
		Ticks:     *ticks,
		Seed:      *seed,
		FrameTime: *dt,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := report.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
	if report.SpeedViolations > 0 {
		os.Exit(2)
	}
}
