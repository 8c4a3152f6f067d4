package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/steering/scenarios"
)

func main() {
	scenarioName := flag.String("scenario", "boids", "scenario name in scenarios/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "enable debug overlay and fps logging")
	watch := flag.Bool("watch", false, "reload scenarios, prefabs and scripts when they change on disk")
	seed := flag.Int64("seed", 0, "spawn and wander seed, overriding the scenario seed (0 keeps the scenario seed, or picks a random one)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	list := flag.Bool("list", false, "list scenarios and exit")
	flag.Parse()

	if *list {
		for _, name := range scenarios.Names() {
			fmt.Println(name)
		}
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*scenarioName, *seed, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.sim.Resolution.Width, game.sim.Resolution.Height)
	ebiten.SetWindowTitle(game.title())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
