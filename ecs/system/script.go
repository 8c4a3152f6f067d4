package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/prefabs"
	"github.com/milk9111/steering/steering"
)

// ScriptSystem runs a tengo script once per tick. The script sees `tick`,
// `pointer_x`, `pointer_y` and `agents`, and may assign a `weights` map
// (keys seek, flee, arrive, wander, separate, align, cohere) that overrides
// the scenario weights for the tick.
type ScriptSystem struct {
	name     string
	compiled *tengo.Compiled
	lastErr  string
}

// LoadScriptSystem compiles the named script from the prefab scripts.
func LoadScriptSystem(name string) (*ScriptSystem, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewScriptSystem(name, src)
}

func NewScriptSystem(name string, src []byte) (*ScriptSystem, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("pointer_x", 0.0)
	_ = script.Add("pointer_y", 0.0)
	_ = script.Add("agents", 0)
	_ = script.Add("weights", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &ScriptSystem{name: name, compiled: compiled}, nil
}

func (s *ScriptSystem) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || s.compiled == nil {
		return
	}
	sim, ok := simulation(w)
	if !ok || sim.Paused {
		return
	}

	weights, err := s.run(w, sim)
	if err != nil {
		sim.Override = nil
		if msg := err.Error(); msg != s.lastErr {
			s.lastErr = msg
			log.Printf("script: %s: %v", s.name, err)
		}
		return
	}
	s.lastErr = ""
	sim.Override = weights
}

func (s *ScriptSystem) run(w *ecs.World, sim *component.Simulation) (*steering.Weights, error) {
	var px, py float64
	if e, ok := w.First(component.PointerComponent.Kind()); ok {
		if p, ok := ecs.Get(w, e, component.PointerComponent.Kind()); ok {
			px, py = p.X, p.Y
		}
	}
	agents := len(w.Query(component.VehicleComponent.Kind()))

	if err := s.compiled.Set("tick", int64(sim.Tick)); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("pointer_x", px); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("pointer_y", py); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("agents", agents); err != nil {
		return nil, err
	}
	if err := s.compiled.Set("weights", map[string]any{}); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, err
	}

	raw := s.compiled.Get("weights").Map()
	if len(raw) == 0 {
		return nil, nil
	}
	return decodeWeights(raw)
}

func decodeWeights(raw map[string]any) (*steering.Weights, error) {
	var out steering.Weights
	fields := map[string]*float64{
		"seek":     &out.Seek,
		"flee":     &out.Flee,
		"arrive":   &out.Arrive,
		"wander":   &out.Wander,
		"separate": &out.Separate,
		"align":    &out.Align,
		"cohere":   &out.Cohere,
	}
	for k, v := range raw {
		dst, ok := fields[strings.ToLower(k)]
		if !ok {
			return nil, fmt.Errorf("unknown weight %q", k)
		}
		switch n := v.(type) {
		case float64:
			*dst = n
		case int64:
			*dst = float64(n)
		case int:
			*dst = float64(n)
		default:
			return nil, fmt.Errorf("weight %q: want a number, got %T", k, v)
		}
	}
	return &out, nil
}
