package component

import (
	"image/color"

	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/steering"
)

// Simulation is the singleton holding the state shared by every agent.
type Simulation struct {
	Name       string
	Seed       int64
	Resolution common.Resolution
	Background color.RGBA
	Params     steering.Params
	// Weights are the scenario weights for vehicles without their own.
	Weights steering.Weights
	Bounds  steering.Bounds
	// Override, while set, replaces the weights of every vehicle that does
	// not carry its own.
	Override *steering.Weights
	Source   steering.Source
	Index    steering.NeighborIndex
	Timer    *common.GameTimer
	Paused   bool
	Tick     uint64
	// Retunes counts live scenario retunes.
	Retunes uint64
}

var SimulationComponent = NewComponent[Simulation]()
