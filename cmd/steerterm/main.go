package main

import (
	"flag"
	"log"
)

func main() {
	scenarioName := flag.String("scenario", "pointer", "scenario name in scenarios/ (basename, .yaml optional)")
	seed := flag.Int64("seed", 0, "spawn and wander seed, overriding the scenario seed (0 keeps the scenario seed, or picks a random one)")
	flag.Parse()

	term, err := NewTerm(*scenarioName, *seed)
	if err != nil {
		log.Fatal(err)
	}
	defer term.Close()

	term.Run()
}
