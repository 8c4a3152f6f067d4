package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/steering"
)

// SteeringSystem steps every Vehicle as one flock and writes the result back
// to the vehicles and their transforms.
type SteeringSystem struct {
	flock    *steering.Flock
	index    steering.NeighborIndex
	entities []ecs.Entity
}

func NewSteeringSystem() *SteeringSystem {
	return &SteeringSystem{}
}

func (s *SteeringSystem) Update(w *ecs.World) {
	sim, ok := simulation(w)
	if !ok || sim.Paused {
		return
	}

	s.entities = append(s.entities[:0], w.Query(component.VehicleComponent.Kind(), component.TransformComponent.Kind())...)
	if len(s.entities) == 0 {
		return
	}
	sort.Slice(s.entities, func(i, j int) bool { return s.entities[i] < s.entities[j] })

	if s.flock == nil || s.index != sim.Index {
		s.index = sim.Index
		s.flock = steering.NewFlock(sim.Index)
	}
	s.flock.Reset()
	for _, e := range s.entities {
		v, _ := ecs.Get(w, e, component.VehicleComponent.Kind())
		weights := v.Weights
		if sim.Override != nil && !v.OwnWeights {
			weights = *sim.Override
		}
		s.flock.Add(v.Agent, weights)
	}

	in := steering.StepInput{
		Params: sim.Params,
		Source: sim.Source,
		Bounds: sim.Bounds,
	}
	in.Target, in.HasTarget = pointerTarget(w)
	s.flock.Step(in)

	for i, e := range s.entities {
		v, _ := ecs.Get(w, e, component.VehicleComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		v.Agent = s.flock.Agent(i)
		t.X = v.Agent.Position.X
		t.Y = v.Agent.Position.Y
		t.Rotation = v.Agent.Heading
	}
}

func pointerTarget(w *ecs.World) (cp.Vector, bool) {
	e, ok := w.First(component.PointerComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	p, ok := ecs.Get(w, e, component.PointerComponent.Kind())
	if !ok || !p.Active {
		return cp.Vector{}, false
	}
	return cp.Vector{X: p.X, Y: p.Y}, true
}
