package steering

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParams = errors.New("steering: invalid params")

// Params holds the tuning shared by every agent of a simulation.
type Params struct {
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxForce         float64 `yaml:"max_force"`
	SeekStopDistance float64 `yaml:"seek_stop_distance"`
	FleeRadius       float64 `yaml:"flee_radius"`
	ArriveRadius     float64 `yaml:"arrive_radius"`
	WanderRadius     float64 `yaml:"wander_radius"`
	WanderDistance   float64 `yaml:"wander_distance"`
	// WanderTurn is the width in radians of the band the wander angle may move
	// by in one tick, centered on zero.
	WanderTurn      float64 `yaml:"wander_turn"`
	SeparationRange float64 `yaml:"separation_range"`
	AlignRange      float64 `yaml:"align_range"`
	CohesionRange   float64 `yaml:"cohesion_range"`
}

// DefaultParams returns the tuning of the classic boids pond.
func DefaultParams() Params {
	return Params{
		MaxSpeed:         2.0,
		MaxForce:         0.03,
		SeekStopDistance: 1.0,
		FleeRadius:       200,
		ArriveRadius:     100,
		WanderRadius:     100,
		WanderDistance:   200,
		WanderTurn:       15 * math.Pi / 180,
		SeparationRange:  80,
		AlignRange:       160,
		CohesionRange:    160,
	}
}

// WithDefaults fills zero fields from DefaultParams.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&p.MaxSpeed, d.MaxSpeed)
	fill(&p.MaxForce, d.MaxForce)
	fill(&p.SeekStopDistance, d.SeekStopDistance)
	fill(&p.FleeRadius, d.FleeRadius)
	fill(&p.ArriveRadius, d.ArriveRadius)
	fill(&p.WanderRadius, d.WanderRadius)
	fill(&p.WanderDistance, d.WanderDistance)
	fill(&p.WanderTurn, d.WanderTurn)
	fill(&p.SeparationRange, d.SeparationRange)
	fill(&p.AlignRange, d.AlignRange)
	fill(&p.CohesionRange, d.CohesionRange)
	return p
}

// Validate rejects negative or non-finite tuning and zero speed or force.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"max_speed", p.MaxSpeed},
		{"max_force", p.MaxForce},
		{"seek_stop_distance", p.SeekStopDistance},
		{"flee_radius", p.FleeRadius},
		{"arrive_radius", p.ArriveRadius},
		{"wander_radius", p.WanderRadius},
		{"wander_distance", p.WanderDistance},
		{"wander_turn", p.WanderTurn},
		{"separation_range", p.SeparationRange},
		{"align_range", p.AlignRange},
		{"cohesion_range", p.CohesionRange},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, f.name, f.value)
		}
	}
	if p.MaxSpeed == 0 || p.MaxForce == 0 {
		return fmt.Errorf("%w: max_speed and max_force must be positive", ErrInvalidParams)
	}
	return nil
}

// Weights scales each behavior before its force is applied. A zero weight
// disables the behavior.
type Weights struct {
	Seek     float64 `yaml:"seek"`
	Flee     float64 `yaml:"flee"`
	Arrive   float64 `yaml:"arrive"`
	Wander   float64 `yaml:"wander"`
	Separate float64 `yaml:"separate"`
	Align    float64 `yaml:"align"`
	Cohere   float64 `yaml:"cohere"`
}

// FlockingWeights is the weighting of the boids pond.
func FlockingWeights() Weights {
	return Weights{Wander: 1, Separate: 1.5, Align: 1, Cohere: 1}
}

// Targeted reports whether any weighted behavior needs a target point.
func (w Weights) Targeted() bool {
	return w.Seek != 0 || w.Flee != 0 || w.Arrive != 0
}

// Flocking reports whether any weighted behavior reads neighbors.
func (w Weights) Flocking() bool {
	return w.Separate != 0 || w.Align != 0 || w.Cohere != 0
}
