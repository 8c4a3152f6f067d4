package system

import (
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/waypoint"
)

// PointerState is one frame of pointer input in world coordinates.
type PointerState struct {
	X      float64
	Y      float64
	Active bool
	// AddWaypoint is true on the frame the secondary button went down.
	AddWaypoint bool
	Export      bool
}

// PointerSource is polled once per frame. The window, the terminal and
// tests each provide one.
type PointerSource interface {
	Poll() PointerState
}

// PointerFunc adapts a function to PointerSource.
type PointerFunc func() PointerState

func (f PointerFunc) Poll() PointerState {
	return f()
}

type InputSystem struct {
	source PointerSource
}

func NewInputSystem(source PointerSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}
	st := i.source.Poll()

	ecs.ForEach(w, component.PointerComponent.Kind(), func(e ecs.Entity, p *component.Pointer) {
		p.X = st.X
		p.Y = st.Y
		p.Active = st.Active
		p.AddWaypoint = st.AddWaypoint
		p.Export = st.Export
	})

	ecs.ForEach3(w, component.TargetTagComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(),
		func(_ ecs.Entity, _ *component.TargetTag, t *component.Transform, s *component.Sprite) {
			t.X = st.X
			t.Y = st.Y
			s.Hidden = !st.Active
		})

	if !st.AddWaypoint {
		return
	}
	ecs.ForEach(w, component.WalkerComponent.Kind(), func(e ecs.Entity, walker *component.Walker) {
		if !walker.AcceptInput || walker.Path == nil {
			return
		}
		wp := waypoint.At(st.X, st.Y)
		walker.Path.Push(wp)
		w.Events().Push(ecs.Event{Type: ecs.EventWaypointAdded, Data: WaypointEvent{Entity: e, Waypoint: wp}})
	})
}

// WaypointEvent is the payload of the waypoint events.
type WaypointEvent struct {
	Entity   ecs.Entity
	Waypoint waypoint.Waypoint
}
