package steering

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparateCoincident(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(nil)
	f.Add(NewAgent(cp.Vector{X: 40, Y: 40}, cp.Vector{}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 40, Y: 40}, cp.Vector{}, p), FlockingWeights())

	first := f.Separate(0, p)
	second := f.Separate(1, p)

	for _, v := range []cp.Vector{first, second} {
		assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0))
	}
	assert.InDelta(t, -p.MaxForce, first.X, eps)
	assert.InDelta(t, p.MaxForce, second.X, eps)

	f.Step(StepInput{Params: p, Weights: &Weights{Separate: 1}})
	assert.Less(t, f.Agent(0).Position.X, f.Agent(1).Position.X)
}

func TestFlockingRulesWithoutNeighbors(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(nil)
	f.Add(NewAgent(cp.Vector{}, cp.Vector{X: 1}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 1000, Y: 1000}, cp.Vector{X: 1}, p), FlockingWeights())

	assert.Equal(t, cp.Vector{}, f.Separate(0, p))
	assert.Equal(t, cp.Vector{}, f.Align(0, p))
	assert.Equal(t, cp.Vector{}, f.Cohere(0, p))
	assert.Empty(t, f.Neighbors(0, p.CohesionRange))
}

func TestAlignZeroAverage(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(nil)
	f.Add(NewAgent(cp.Vector{}, cp.Vector{X: 1}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 10}, cp.Vector{X: 1}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 20}, cp.Vector{X: -1}, p), FlockingWeights())

	assert.Equal(t, cp.Vector{}, f.Align(0, p))
}

func TestCohereSeeksCentroid(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(nil)
	f.Add(NewAgent(cp.Vector{}, cp.Vector{}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 50, Y: 10}, cp.Vector{}, p), FlockingWeights())
	f.Add(NewAgent(cp.Vector{X: 50, Y: -10}, cp.Vector{}, p), FlockingWeights())

	force := f.Cohere(0, p)
	assert.InDelta(t, p.MaxForce, force.X, eps)
	assert.InDelta(t, 0, force.Y, eps)
}

func randomPositions(n int, seed int64, size float64) []cp.Vector {
	rng := rand.New(rand.NewSource(seed))
	out := make([]cp.Vector, n)
	for i := range out {
		out[i] = cp.Vector{X: rng.Float64() * size, Y: rng.Float64() * size}
	}
	return out
}

func collect(idx NeighborIndex, i int, radius float64) ([]int, []float64) {
	var js []int
	var ds []float64
	idx.Within(i, radius, func(j int, d float64) {
		js = append(js, j)
		ds = append(ds, d)
	})
	return js, ds
}

func TestLinearAndRTreeAgree(t *testing.T) {
	positions := randomPositions(150, 3, 500)
	// A coincident pair must be reported by both.
	positions[10] = positions[11]

	linear := NewLinearIndex()
	tree := NewRTreeIndex()
	linear.Rebuild(positions)
	tree.Rebuild(positions)

	for _, radius := range []float64{0, 30, 80, 160, 1000} {
		for i := range positions {
			lj, ld := collect(linear, i, radius)
			rj, rd := collect(tree, i, radius)
			require.Equal(t, lj, rj, "radius %v agent %d", radius, i)
			require.Equal(t, ld, rd, "radius %v agent %d", radius, i)
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	for _, idx := range []NeighborIndex{NewLinearIndex(), NewRTreeIndex()} {
		idx.Rebuild(randomPositions(3, 1, 10))
		js, _ := collect(idx, 5, 100)
		assert.Empty(t, js)
		js, _ = collect(idx, -1, 100)
		assert.Empty(t, js)
	}
}

func TestStepReadsSnapshot(t *testing.T) {
	p := DefaultParams()
	agents := []Agent{
		NewAgent(cp.Vector{X: 100, Y: 100}, cp.Vector{X: 1}, p),
		NewAgent(cp.Vector{X: 130, Y: 110}, cp.Vector{Y: 1}, p),
		NewAgent(cp.Vector{X: 90, Y: 150}, cp.Vector{X: -1, Y: 1}, p),
		NewAgent(cp.Vector{X: 160, Y: 60}, cp.Vector{X: 0.5, Y: -1}, p),
	}
	in := StepInput{
		Params:    p,
		Target:    cp.Vector{X: 120, Y: 120},
		HasTarget: true,
		Weights:   &Weights{Seek: 1, Wander: 1, Separate: 1.5, Align: 1, Cohere: 1},
		Bounds:    NewBounds(400, 400, BoundsWrap, 20),
	}

	forward := NewFlock(NewRTreeIndex())
	backward := NewFlock(nil)
	for i := range agents {
		forward.Add(agents[i], Weights{})
		backward.Add(agents[len(agents)-1-i], Weights{})
	}
	for tick := 0; tick < 50; tick++ {
		forward.Step(in)
		backward.Step(in)
	}
	for i := range agents {
		a := forward.Agent(i)
		b := backward.Agent(len(agents) - 1 - i)
		assert.InDelta(t, a.Position.X, b.Position.X, 1e-6, "agent %d", i)
		assert.InDelta(t, a.Position.Y, b.Position.Y, 1e-6, "agent %d", i)
	}
}

func TestStepKeepsSpeedLimit(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(NewRTreeIndex())
	for i, pos := range randomPositions(120, 11, 600) {
		vel := cp.Vector{X: float64(i%5) - 2, Y: float64(i%3) - 1}
		f.Add(NewAgent(pos, vel, p), FlockingWeights())
	}
	in := StepInput{
		Params: p,
		Source: NewNoiseSource(11, 0),
		Bounds: NewBounds(600, 600, BoundsWrap, 20),
	}
	for tick := 0; tick < 200; tick++ {
		f.Step(in)
		for i := 0; i < f.Len(); i++ {
			a := f.Agent(i)
			require.LessOrEqual(t, a.Speed(), p.MaxSpeed+eps, "tick %d agent %d", tick, i)
			require.Equal(t, cp.Vector{}, a.Acceleration)
		}
	}
}

func TestStepUsesMemberWeights(t *testing.T) {
	p := DefaultParams()
	f := NewFlock(nil)
	seeker := f.Add(NewAgent(cp.Vector{}, cp.Vector{}, p), Weights{Seek: 1})
	idle := f.Add(NewAgent(cp.Vector{X: 500}, cp.Vector{}, p), Weights{})

	f.Step(StepInput{Params: p, Target: cp.Vector{X: 100}, HasTarget: true})

	assert.Greater(t, f.Agent(seeker).Position.X, 0.0)
	assert.Equal(t, cp.Vector{X: 500}, f.Agent(idle).Position)

	// Without a target the seeker has nothing to do.
	f.SetAgent(seeker, NewAgent(cp.Vector{}, cp.Vector{}, p))
	f.Step(StepInput{Params: p})
	assert.Equal(t, cp.Vector{}, f.Agent(seeker).Position)
}

func TestBounds(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name    string
		bounds  Bounds
		pos     cp.Vector
		vel     cp.Vector
		wantPos cp.Vector
		wantVel cp.Vector
	}{
		{"none", NewBounds(100, 100, BoundsNone, 10), cp.Vector{X: -50, Y: 300}, cp.Vector{X: -1}, cp.Vector{X: -50, Y: 300}, cp.Vector{X: -1}},
		{"wrap left", NewBounds(100, 100, BoundsWrap, 10), cp.Vector{X: -11, Y: 50}, cp.Vector{X: -1}, cp.Vector{X: 110, Y: 50}, cp.Vector{X: -1}},
		{"wrap bottom edge", NewBounds(100, 100, BoundsWrap, 10), cp.Vector{X: 50, Y: 111}, cp.Vector{Y: 1}, cp.Vector{X: 50, Y: -10}, cp.Vector{Y: 1}},
		{"wrap inside margin", NewBounds(100, 100, BoundsWrap, 10), cp.Vector{X: -5, Y: 50}, cp.Vector{X: -1}, cp.Vector{X: -5, Y: 50}, cp.Vector{X: -1}},
		{"bounce right", NewBounds(100, 100, BoundsBounce, 10), cp.Vector{X: 95, Y: 50}, cp.Vector{X: 1.5, Y: 0.5}, cp.Vector{X: 90, Y: 50}, cp.Vector{X: -1.5, Y: 0.5}},
		{"bounce top", NewBounds(100, 100, BoundsBounce, 10), cp.Vector{X: 50, Y: 2}, cp.Vector{Y: -1}, cp.Vector{X: 50, Y: 10}, cp.Vector{Y: 1}},
		{"bounce degenerate", NewBounds(10, 10, BoundsBounce, 20), cp.Vector{X: 50, Y: 2}, cp.Vector{X: 1, Y: -1}, cp.Vector{X: 5, Y: 5}, cp.Vector{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAgent(tt.pos, tt.vel, p)
			tt.bounds.Apply(&a)
			assert.Equal(t, tt.wantPos, a.Position)
			assert.Equal(t, tt.wantVel, a.Velocity)
		})
	}
}

func TestParseBoundsMode(t *testing.T) {
	tests := []struct {
		in   string
		want BoundsMode
		err  bool
	}{
		{"", BoundsNone, false},
		{"none", BoundsNone, false},
		{"Wrap", BoundsWrap, false},
		{" bounce ", BoundsBounce, false},
		{"teleport", BoundsNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoundsMode(tt.in)
			if tt.err {
				assert.True(t, errors.Is(err, ErrUnknownBoundsMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) BoundsMode {
	t.Helper()
	m, err := ParseBoundsMode(s)
	require.NoError(t, err)
	return m
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		ok     bool
	}{
		{"defaults", func(*Params) {}, true},
		{"negative range", func(p *Params) { p.AlignRange = -1 }, false},
		{"nan force", func(p *Params) { p.MaxForce = math.NaN() }, false},
		{"inf radius", func(p *Params) { p.FleeRadius = math.Inf(1) }, false},
		{"zero speed", func(p *Params) { p.MaxSpeed = 0 }, false},
		{"zero seek stop", func(p *Params) { p.SeekStopDistance = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{MaxSpeed: 4}.WithDefaults()
	assert.Equal(t, 4.0, p.MaxSpeed)
	assert.Equal(t, DefaultParams().MaxForce, p.MaxForce)
	assert.Equal(t, DefaultParams().CohesionRange, p.CohesionRange)
}

func TestSources(t *testing.T) {
	noise := NewNoiseSource(42, 0.1)
	for tick := 0; tick < 200; tick++ {
		for i := 0; i < 20; i++ {
			v := noise.Sample(i)
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
		noise.Advance()
	}

	a, b := NewRandSource(9), NewRandSource(9)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Sample(i), b.Sample(i))
	}
}
