package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/scenarios"
	"github.com/milk9111/steering/steering"
	"github.com/milk9111/steering/waypoint"
)

// SpawnScenario fills an empty world with the scenario's simulation
// singleton, pointer, agents and walkers. The same seed spawns the same
// world.
func SpawnScenario(w *ecs.World, sc *scenarios.Scenario, seed int64, timer *common.GameTimer) (*component.Simulation, error) {
	if w == nil || sc == nil {
		return nil, fmt.Errorf("spawn scenario: nil world or scenario")
	}
	rng := rand.New(rand.NewSource(seed))

	sim := &component.Simulation{
		Name:       sc.Name,
		Seed:       seed,
		Resolution: sc.Size(),
		Params:     sc.SteeringParams(),
		Weights:    sc.Weights,
		Bounds:     sc.SteeringBounds(),
		Source:     sc.WanderSource(rng.Int63()),
		Index:      sc.NeighborIndex(),
		Timer:      timer,
	}
	if sc.Background != nil {
		sim.Background = sc.Background.Color
	}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.SimulationComponent.Kind(), sim); err != nil {
		return nil, fmt.Errorf("spawn scenario %s: %w", sc.Name, err)
	}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.StatsComponent.Kind(), &component.Stats{}); err != nil {
		return nil, fmt.Errorf("spawn scenario %s: %w", sc.Name, err)
	}

	if err := spawnPointer(w, sc); err != nil {
		return nil, fmt.Errorf("spawn scenario %s: %w", sc.Name, err)
	}
	for i, g := range sc.Agents {
		if err := spawnAgents(w, sim, g, rng); err != nil {
			return nil, fmt.Errorf("spawn scenario %s: agents[%d]: %w", sc.Name, i, err)
		}
	}
	for i, wg := range sc.Walkers {
		if err := spawnWalker(w, wg); err != nil {
			return nil, fmt.Errorf("spawn scenario %s: walkers[%d]: %w", sc.Name, i, err)
		}
	}
	return sim, nil
}

func spawnPointer(w *ecs.World, sc *scenarios.Scenario) error {
	if sc.Target == "" {
		return ecs.Add(w, ecs.CreateEntity(w), component.PointerComponent.Kind(), &component.Pointer{})
	}
	e, err := BuildEntity(w, sc.Target)
	if err != nil {
		return err
	}
	if !ecs.Has(w, e, component.PointerComponent.Kind()) {
		return ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{})
	}
	return nil
}

// spawnAgents scatters the group over the play area, or around its fixed
// position, with random velocities up to max speed.
func spawnAgents(w *ecs.World, sim *component.Simulation, g scenarios.AgentGroup, rng *rand.Rand) error {
	size := sim.Resolution
	for n := 0; n < g.Count; n++ {
		e, err := BuildEntity(w, g.Prefab)
		if err != nil {
			return err
		}
		v, ok := ecs.Get(w, e, component.VehicleComponent.Kind())
		if !ok {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("prefab %s has no vehicle", g.Prefab)
		}

		var pos cp.Vector
		if g.X != nil && g.Y != nil {
			pos = cp.Vector{X: *g.X, Y: *g.Y}
			if g.Spread > 0 {
				pos = pos.Add(cp.ForAngle(rng.Float64() * 2 * math.Pi).Mult(rng.Float64() * g.Spread))
			}
		} else {
			pos = cp.Vector{X: rng.Float64() * float64(size.Width), Y: rng.Float64() * float64(size.Height)}
		}

		p := vehicleParams(v, sim.Params)
		var vel cp.Vector
		if !g.AtRest {
			vel = cp.Vector{
				X: (rng.Float64()*2 - 1) * p.MaxSpeed,
				Y: (rng.Float64()*2 - 1) * p.MaxSpeed,
			}
		}
		v.Agent = steering.NewAgent(pos, vel, p)
		if err := SetEntityTransform(w, e, pos.X, pos.Y, v.Agent.Heading); err != nil {
			return err
		}
	}
	return nil
}

// spawnWalker builds the walker prefab and applies the scenario's settings
// over it. Scenario waypoints replace the prefab's.
func spawnWalker(w *ecs.World, wg scenarios.WalkerGroup) error {
	e, err := BuildEntity(w, wg.Prefab)
	if err != nil {
		return err
	}
	walker, ok := ecs.Get(w, e, component.WalkerComponent.Kind())
	if !ok || walker.Path == nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("prefab %s has no walker", wg.Prefab)
	}

	path := walker.Path
	if wg.Speed > 0 {
		path.Speed = wg.Speed
	}
	if wg.Mode != "" {
		mode, err := waypoint.ParseMode(wg.Mode)
		if err != nil {
			return err
		}
		path.Mode = mode
	}
	if wg.Threshold > 0 {
		path.Threshold = wg.Threshold
	}
	if wg.ThresholdFactor > 0 {
		path.ThresholdFactor = wg.ThresholdFactor
	}
	if wg.ShowLabels != nil {
		walker.ShowLabels = *wg.ShowLabels
	}
	walker.AcceptInput = walker.AcceptInput || wg.AcceptInput
	if len(wg.Waypoints) > 0 {
		path.Reset(wg.Waypoints)
	}
	return SetEntityTransform(w, e, wg.X, wg.Y, 0)
}

// RetuneScenario applies a reloaded scenario's tuning to a live world
// without respawning: params, weights, bounds and background on the
// simulation, and limits and weights on every vehicle.
func RetuneScenario(w *ecs.World, sc *scenarios.Scenario) error {
	sim, ok := simulationOf(w)
	if !ok {
		return fmt.Errorf("retune %s: no simulation", sc.Name)
	}
	sim.Params = sc.SteeringParams()
	sim.Weights = sc.Weights
	sim.Bounds = sc.SteeringBounds()
	sim.Resolution = sc.Size()
	if sc.Background != nil {
		sim.Background = sc.Background.Color
	}

	ecs.ForEach(w, component.VehicleComponent.Kind(), func(_ ecs.Entity, v *component.Vehicle) {
		p := vehicleParams(v, sim.Params)
		v.Agent.MaxSpeed = p.MaxSpeed
		v.Agent.MaxForce = p.MaxForce
		if !v.OwnWeights {
			v.Weights = sim.Weights
		}
	})
	sim.Retunes++
	return nil
}
