package entity

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/prefabs"
	"github.com/milk9111/steering/steering"
	"github.com/milk9111/steering/waypoint"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"boid_tag":     addBoidTag,
	"walker_tag":   addWalkerTag,
	"target_tag":   addTargetTag,
	"pointer":      addPointer,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"vehicle":      addVehicle,
	"walker":       addWalker,
	"ttl":          addTTL,
}

// Vehicles and walkers start where the transform puts them, so transform
// comes first.
var componentBuildOrder = []string{
	"boid_tag",
	"walker_tag",
	"target_tag",
	"pointer",
	"transform",
	"sprite",
	"render_layer",
	"vehicle",
	"walker",
	"ttl",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform moves e, and the vehicle or walker riding on it.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	if v, ok := ecs.Get(w, e, component.VehicleComponent.Kind()); ok {
		v.Agent.Position = cp.Vector{X: x, Y: y}
	}
	if walker, ok := ecs.Get(w, e, component.WalkerComponent.Kind()); ok && walker.Path != nil {
		walker.Path.Position = cp.Vector{X: x, Y: y}
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addBoidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BoidTagComponent.Kind(), &component.BoidTag{})
}

func addWalkerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WalkerTagComponent.Kind(), &component.WalkerTag{})
}

func addTargetTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{})
}

func addPointer(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	sprite := component.Sprite{
		Key:      spec.Image,
		OriginX:  spec.OriginX,
		OriginY:  spec.OriginY,
		Centered: spec.CenterOriginIfZero && spec.OriginX == 0 && spec.OriginY == 0,
	}
	if spec.Tint != nil {
		sprite.Tint = spec.Tint.Color
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type vehicleSpec = prefabs.VehicleComponentSpec

// addVehicle starts the agent at rest on the transform, tuned by the
// simulation params when a Simulation exists.
func addVehicle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[vehicleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode vehicle spec: %w", err)
	}
	if spec.MaxSpeed < 0 || spec.MaxForce < 0 {
		return fmt.Errorf("vehicle: negative max_speed or max_force")
	}

	params := steering.DefaultParams()
	weights := steering.Weights{}
	if sim, ok := simulationOf(w); ok {
		params = sim.Params
		weights = sim.Weights
	}

	v := &component.Vehicle{MaxSpeed: spec.MaxSpeed, MaxForce: spec.MaxForce}
	if own, ok := weightsFromSpec(spec.Weights); ok {
		weights = own
		v.OwnWeights = true
	}
	v.Weights = weights

	var pos cp.Vector
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = cp.Vector{X: t.X, Y: t.Y}
	}
	v.Agent = steering.NewAgent(pos, cp.Vector{}, vehicleParams(v, params))
	return ecs.Add(w, e, component.VehicleComponent.Kind(), v)
}

// vehicleParams applies the vehicle's own limits over p.
func vehicleParams(v *component.Vehicle, p steering.Params) steering.Params {
	if v.MaxSpeed > 0 {
		p.MaxSpeed = v.MaxSpeed
	}
	if v.MaxForce > 0 {
		p.MaxForce = v.MaxForce
	}
	return p
}

// weightsFromSpec reports ok when the prefab sets any weight. Unset weights
// are then zero.
func weightsFromSpec(spec prefabs.WeightsSpec) (steering.Weights, bool) {
	var out steering.Weights
	set := false
	pick := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
			set = true
		}
	}
	pick(&out.Seek, spec.Seek)
	pick(&out.Flee, spec.Flee)
	pick(&out.Arrive, spec.Arrive)
	pick(&out.Wander, spec.Wander)
	pick(&out.Separate, spec.Separate)
	pick(&out.Align, spec.Align)
	pick(&out.Cohere, spec.Cohere)
	return out, set
}

type walkerSpec = prefabs.WalkerComponentSpec

func addWalker(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[walkerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode walker spec: %w", err)
	}
	mode, err := waypoint.ParseMode(spec.Mode)
	if err != nil {
		return err
	}
	if spec.Speed < 0 {
		return fmt.Errorf("walker: negative speed")
	}

	var pos cp.Vector
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = cp.Vector{X: t.X, Y: t.Y}
	}
	path := waypoint.NewWalker(pos, spec.Speed, mode)
	if spec.Threshold > 0 {
		path.Threshold = spec.Threshold
	}
	path.ThresholdFactor = spec.ThresholdFactor
	for _, wp := range spec.Waypoints {
		path.Push(waypoint.Waypoint{Position: cp.Vector{X: wp.X, Y: wp.Y}, Label: wp.Label})
	}

	return ecs.Add(w, e, component.WalkerComponent.Kind(), &component.Walker{
		Path:        path,
		ShowLabels:  spec.ShowLabels,
		AcceptInput: spec.AcceptInput,
	})
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Frames <= 0 {
		return fmt.Errorf("ttl: frames must be positive")
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

func simulationOf(w *ecs.World) (*component.Simulation, bool) {
	e, ok := w.First(component.SimulationComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.SimulationComponent.Kind())
}
