package system

import (
	"log"

	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/ecs/entity"
)

// WaypointSystem advances every walker by the frame time and reports
// arrivals as events. When PingPrefab is set, a short-lived marker is
// spawned where each waypoint was reached.
type WaypointSystem struct {
	PingPrefab string
}

func NewWaypointSystem(pingPrefab string) *WaypointSystem {
	return &WaypointSystem{PingPrefab: pingPrefab}
}

func (s *WaypointSystem) Update(w *ecs.World) {
	sim, ok := simulation(w)
	if !ok || sim.Paused {
		return
	}
	dt := sim.Timer.FrameTime()

	type arrival struct {
		e  ecs.Entity
		ev WaypointEvent
	}
	var arrivals []arrival

	ecs.ForEach2(w, component.WalkerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, walker *component.Walker, t *component.Transform) {
		if walker.Path == nil {
			return
		}
		wp, arrived := walker.Path.Update(dt)
		t.X = walker.Path.Position.X
		t.Y = walker.Path.Position.Y
		t.Rotation = walker.Path.Heading
		if !arrived {
			return
		}
		ev := WaypointEvent{Entity: e, Waypoint: wp}
		w.Events().Push(ecs.Event{Type: ecs.EventWaypointArrived, Data: ev})
		if walker.Path.Done() {
			w.Events().Push(ecs.Event{Type: ecs.EventPathFinished, Data: ev})
		}
		arrivals = append(arrivals, arrival{e: e, ev: ev})
	})

	if s.PingPrefab == "" {
		return
	}
	// Spawn after the walk so the store is not grown mid-iteration.
	for _, a := range arrivals {
		ping, err := entity.BuildEntity(w, s.PingPrefab)
		if err != nil {
			log.Printf("waypoint: ping %s: %v", s.PingPrefab, err)
			s.PingPrefab = ""
			return
		}
		if err := entity.SetEntityTransform(w, ping, a.ev.Waypoint.Position.X, a.ev.Waypoint.Position.Y, 0); err != nil {
			log.Printf("waypoint: ping transform: %v", err)
		}
	}
}
