package system

import (
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
)

// speedTolerance absorbs rounding in the speed limit.
const speedTolerance = 1e-9

// StatsSystem keeps the Stats singleton current. It runs last so it sees
// every event of the tick.
type StatsSystem struct{}

func NewStatsSystem() *StatsSystem {
	return &StatsSystem{}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	stats := ensureStats(w)
	if sim, ok := simulation(w); ok && sim.Paused {
		return
	}
	stats.Ticks++

	count := 0
	total := 0.0
	ecs.ForEach(w, component.VehicleComponent.Kind(), func(_ ecs.Entity, v *component.Vehicle) {
		speed := v.Agent.Speed()
		count++
		total += speed
		if speed > stats.MaxSpeed {
			stats.MaxSpeed = speed
		}
		if speed > v.Agent.MaxSpeed+speedTolerance {
			stats.SpeedViolations++
		}
	})
	stats.Agents = count
	stats.MeanSpeed = 0
	if count > 0 {
		stats.MeanSpeed = total / float64(count)
	}

	for _, ev := range w.Events().Peek() {
		switch ev.Type {
		case ecs.EventWaypointArrived:
			stats.Arrivals++
		case ecs.EventPathFinished:
			stats.FinishedPaths++
		}
	}
}

func ensureStats(w *ecs.World) *component.Stats {
	if e, ok := w.First(component.StatsComponent.Kind()); ok {
		if st, ok := ecs.Get(w, e, component.StatsComponent.Kind()); ok {
			return st
		}
	}
	st := &component.Stats{}
	_ = ecs.Add(w, ecs.CreateEntity(w), component.StatsComponent.Kind(), st)
	return st
}
