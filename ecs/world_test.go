package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/steering/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(7)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.Slot() != old.Slot() {
		t.Fatalf("expected slot %d to be reused, got %d", old.Slot(), fresh.Slot())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("components of a destroyed entity must not leak into its slot")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle must not resolve")
	}
	if err := Add(w, old, kind, intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponentsTable(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_float_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), float64Ptr(1.5)); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), float64Ptr(2.5))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have float component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "replace_keeps_single_entry",
			setup: func() error { return Add(w, e2, h1.Kind(), intPtr(3)) },
			check: func(t *testing.T) {
				if err := Add(w, e2, h1.Kind(), intPtr(4)); err != nil {
					t.Fatal(err)
				}
				v, _ := Get(w, e2, h1.Kind())
				if *v != 4 {
					t.Fatalf("expected replaced value 4, got %d", *v)
				}
				if n := len(w.Query(h1.Kind())); n != 1 {
					t.Fatalf("expected one int holder, got %d", n)
				}
			},
			teardown: func() bool { return Remove(w, e2, h1.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[int](w, e, component.NewComponentKind[int](), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)
		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("destroy_during_walk", func(t *testing.T) {
		w := NewWorld()
		kind := component.NewComponentKind[int]()
		var ents []Entity
		for i := 0; i < 4; i++ {
			e := CreateEntity(w)
			if err := Add(w, e, kind, intPtr(i)); err != nil {
				t.Fatal(err)
			}
			ents = append(ents, e)
		}

		visited := 0
		ForEach(w, kind, func(e Entity, v *int) {
			visited++
			if *v == 0 {
				DestroyEntity(w, ents[3])
			}
		})
		if visited != 3 {
			t.Fatalf("expected 3 visits after destroying a later entity, got %d", visited)
		}
	})

	t.Run("mutation_through_pointer", func(t *testing.T) {
		w := NewWorld()
		kind := component.NewComponentKind[int]()
		e := CreateEntity(w)
		if err := Add(w, e, kind, intPtr(1)); err != nil {
			t.Fatal(err)
		}
		ForEach(w, kind, func(_ Entity, v *int) { *v += 41 })
		v, _ := Get(w, e, kind)
		if *v != 42 {
			t.Fatalf("expected 42, got %d", *v)
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, add := range []struct {
					e Entity
					k component.ComponentKind[int]
				}{{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb}, {e3, kc}} {
					if err := Add(w, add.e, add.k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
					if err := Add(w, e, k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nothing",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach4MixedTypes(t *testing.T) {
	w := NewWorld()
	ki := component.NewComponentKind[int]()
	kf := component.NewComponentKind[float64]()
	ks := component.NewComponentKind[string]()
	kb := component.NewComponentKind[bool]()

	full := CreateEntity(w)
	partial := CreateEntity(w)

	s, b := "x", true
	for _, err := range []error{
		Add(w, full, ki, intPtr(1)),
		Add(w, full, kf, float64Ptr(2)),
		Add(w, full, ks, &s),
		Add(w, full, kb, &b),
		Add(w, partial, ki, intPtr(1)),
		Add(w, partial, kf, float64Ptr(2)),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	var res []Entity
	ForEach4(w, ki, kf, ks, kb, func(e Entity, _ *int, _ *float64, _ *string, _ *bool) { res = append(res, e) })
	if len(res) != 1 || res[0] != full {
		t.Fatalf("expected only full entity, got %v", res)
	}

	var pairs []Entity
	ForEach2(w, ki, kf, func(e Entity, _ *int, _ *float64) { pairs = append(pairs, e) })
	if len(pairs) != 2 {
		t.Fatalf("expected both entities from ForEach2, got %v", pairs)
	}
}

func TestFirstAndQuery(t *testing.T) {
	w := NewWorld()
	tag := component.NewComponentKind[struct{}]()
	val := component.NewComponentKind[int]()

	if _, ok := w.First(tag); ok {
		t.Fatalf("First on an empty store must report false")
	}

	a := CreateEntity(w)
	b := CreateEntity(w)
	if err := Add(w, b, tag, &struct{}{}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, a, val, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, b, val, intPtr(2)); err != nil {
		t.Fatal(err)
	}

	if e, ok := w.First(tag); !ok || e != b {
		t.Fatalf("expected First to return b, got %v ok=%v", e, ok)
	}
	if got := w.Query(tag, val); len(got) != 1 || got[0] != b {
		t.Fatalf("expected Query to return [b], got %v", got)
	}
	if got := w.Query(val); len(got) != 2 {
		t.Fatalf("expected two val holders, got %v", got)
	}
}

type countingSystem struct {
	ticks  int
	events int
}

func (c *countingSystem) Update(w *World) {
	c.ticks++
	c.events += len(w.Events().Peek())
	w.Events().Push(Event{Type: EventWaypointAdded})
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	s := NewScheduler(sys, nil)

	if n := len(s.Systems()); n != 1 {
		t.Fatalf("nil systems must be ignored, got %d systems", n)
	}

	s.Update(w)
	s.Update(w)

	if sys.ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", sys.ticks)
	}
	if sys.events != 0 {
		t.Fatalf("events must not survive the tick they were pushed in, saw %d", sys.events)
	}
	if len(w.Events().Drain()) != 0 {
		t.Fatalf("queue must be empty after Update")
	}
}
