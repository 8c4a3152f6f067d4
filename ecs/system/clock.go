package system

import (
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
)

// ClockSystem ticks the simulation timer and, unless paused, the tick
// counter. It runs first so every later system sees this frame's time.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (c *ClockSystem) Update(w *ecs.World) {
	sim, ok := simulation(w)
	if !ok {
		return
	}
	sim.Timer.Tick()
	if !sim.Paused {
		sim.Tick++
	}
}

// simulation returns the Simulation singleton.
func simulation(w *ecs.World) (*component.Simulation, bool) {
	if w == nil {
		return nil, false
	}
	e, ok := w.First(component.SimulationComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.SimulationComponent.Kind())
}
