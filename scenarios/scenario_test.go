package scenarios

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/steering"
	"github.com/milk9111/steering/waypoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedScenariosLoad(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"boids", "mouse-control", "patrol", "pointer", "school"}, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			sc, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, sc.Name)
		})
	}
}

func TestLoadAcceptsFileNames(t *testing.T) {
	for _, name := range []string{"patrol", "patrol.yaml", "scenarios/patrol.yaml"} {
		sc, err := Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, "patrol", sc.Name)
	}

	_, err := Load("nope")
	assert.True(t, errors.Is(err, ErrUnknownScenario))
}

func TestBoidsScenario(t *testing.T) {
	sc, err := Load("boids")
	require.NoError(t, err)

	assert.Equal(t, common.WUXGA, sc.Size())
	assert.Equal(t, 200, sc.AgentCount())
	assert.Equal(t, steering.FlockingWeights(), sc.Weights)

	p := sc.SteeringParams()
	assert.Equal(t, 2.0, p.MaxSpeed)
	assert.Equal(t, 0.03, p.MaxForce)
	assert.InDelta(t, steering.DefaultParams().WanderTurn, p.WanderTurn, 1e-6)

	b := sc.SteeringBounds()
	assert.Equal(t, steering.BoundsWrap, b.Mode)
	assert.Equal(t, 20.0, b.Margin)
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 1920, T: 1200}, b.Box)

	assert.IsType(t, &steering.RTreeIndex{}, sc.NeighborIndex())
	assert.IsType(t, &steering.RandSource{}, sc.WanderSource(1))
}

func TestWalkerScenarios(t *testing.T) {
	patrol, err := Load("patrol")
	require.NoError(t, err)
	require.Len(t, patrol.Walkers, 1)
	w := patrol.Walkers[0]
	assert.Equal(t, "patrol", w.Mode)
	assert.Equal(t, 100.0, w.Speed)
	assert.Equal(t, []waypoint.Waypoint{
		waypoint.At(120, 120), waypoint.At(280, 250), waypoint.At(230, 440), waypoint.At(520, 510), waypoint.At(680, 100),
	}, w.Waypoints)

	mouse, err := Load("mouse-control")
	require.NoError(t, err)
	require.Len(t, mouse.Walkers, 1)
	assert.Empty(t, mouse.Walkers[0].Waypoints)
	assert.Equal(t, 0.01, mouse.Walkers[0].ThresholdFactor)
	assert.True(t, mouse.Walkers[0].AcceptInput)
	assert.Equal(t, 0, mouse.AgentCount())
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing name", "resolution: hd\n"},
		{"resolution", "name: x\nresolution: vga\n"},
		{"bounds", "name: x\nbounds: {mode: teleport}\n"},
		{"margin", "name: x\nbounds: {mode: wrap, margin: -1}\n"},
		{"neighbors", "name: x\nneighbors: kd\n"},
		{"wander", "name: x\nwander: perlin\n"},
		{"params", "name: x\nparams: {max_force: -1}\n"},
		{"agent prefab", "name: x\nagents: [{count: 3}]\n"},
		{"agent count", "name: x\nagents: [{prefab: boid.yaml, count: -3}]\n"},
		{"walker mode", "name: x\nwalkers: [{prefab: walker.yaml, mode: loop}]\n"},
		{"walker speed", "name: x\nwalkers: [{prefab: walker.yaml, speed: -5}]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}

	_, err := Parse([]byte("name: [\n"))
	assert.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	sc, err := Parse([]byte("name: bare\n"))
	require.NoError(t, err)
	assert.Equal(t, common.HD, sc.Size())
	assert.Equal(t, steering.DefaultParams(), sc.SteeringParams())
	assert.Equal(t, steering.BoundsNone, sc.SteeringBounds().Mode)
	assert.IsType(t, &steering.LinearIndex{}, sc.NeighborIndex())
}

func TestResolveSeed(t *testing.T) {
	seeded := &Scenario{Name: "seeded", Seed: 42}
	assert.Equal(t, int64(7), seeded.ResolveSeed(7))
	assert.Equal(t, int64(42), seeded.ResolveSeed(0))

	unseeded := &Scenario{Name: "unseeded"}
	assert.Equal(t, int64(7), unseeded.ResolveSeed(7))
	assert.NotZero(t, unseeded.ResolveSeed(0))
}
