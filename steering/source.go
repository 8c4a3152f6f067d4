package steering

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Source yields wander samples in [0, 1) for the agent at index i.
type Source interface {
	Sample(i int) float64
}

// Advancer is implemented by sources that move forward once per tick.
type Advancer interface {
	Advance()
}

// RandSource draws independent uniform samples.
type RandSource struct {
	rng *rand.Rand
}

func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandSource) Sample(int) float64 {
	return r.rng.Float64()
}

// NoiseSource samples a 2D simplex noise field, one row per agent, so each
// agent's wander angle drifts smoothly instead of jittering.
type NoiseSource struct {
	noise opensimplex.Noise
	step  float64
	t     float64
}

func NewNoiseSource(seed int64, step float64) *NoiseSource {
	if step <= 0 {
		step = 0.05
	}
	return &NoiseSource{noise: opensimplex.NewNormalized(seed), step: step}
}

func (n *NoiseSource) Sample(i int) float64 {
	v := n.noise.Eval2(n.t, float64(i)*3.7)
	return math.Min(math.Max(v, 0), math.Nextafter(1, 0))
}

func (n *NoiseSource) Advance() {
	n.t += n.step
}
