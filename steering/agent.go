package steering

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
)

// Agent is the kinematic state of one steered vehicle.
type Agent struct {
	Position     cp.Vector
	Velocity     cp.Vector
	Acceleration cp.Vector
	// WanderAngle persists between ticks so wandering turns smoothly.
	WanderAngle float64
	// Heading is the sprite rotation derived from the last non-zero velocity.
	Heading  float64
	MaxSpeed float64
	MaxForce float64
}

func NewAgent(position, velocity cp.Vector, p Params) Agent {
	a := Agent{
		Position: position,
		Velocity: common.Limit(velocity, p.MaxSpeed),
		MaxSpeed: p.MaxSpeed,
		MaxForce: p.MaxForce,
	}
	a.updateHeading()
	return a
}

// ApplyForce limits force to MaxForce and accumulates it.
func (a *Agent) ApplyForce(force cp.Vector) {
	if !common.IsFinite(force) {
		return
	}
	a.Acceleration = a.Acceleration.Add(common.Limit(force, a.MaxForce))
}

// Integrate advances the agent by one tick and clears the acceleration.
func (a *Agent) Integrate() {
	if !common.IsFinite(a.Velocity) {
		a.Velocity = cp.Vector{}
	}
	a.Velocity = common.Limit(a.Velocity.Add(a.Acceleration), a.MaxSpeed)
	a.Position = a.Position.Add(a.Velocity)
	a.Acceleration = cp.Vector{}
	a.updateHeading()
}

func (a *Agent) Speed() float64 {
	return a.Velocity.Length()
}

func (a *Agent) updateHeading() {
	if a.Velocity.LengthSq() == 0 || !common.IsFinite(a.Velocity) {
		return
	}
	a.Heading = common.BearingToTarget(a.Position, a.Position.Add(a.Velocity))
}
