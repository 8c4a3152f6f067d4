package steering

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
)

// steer turns a desired velocity into a force limited to the agent's
// MaxForce.
func steer(a *Agent, desired cp.Vector) cp.Vector {
	vel := a.Velocity
	if !common.IsFinite(vel) {
		vel = cp.Vector{}
	}
	return common.Limit(desired.Sub(vel), a.MaxForce)
}

// Seek steers at full speed toward target, stopping within
// p.SeekStopDistance.
func Seek(a *Agent, target cp.Vector, p Params) cp.Vector {
	desired := target.Sub(a.Position)
	if desired.Length() <= p.SeekStopDistance {
		return cp.Vector{}
	}
	return steer(a, common.Normalize(desired).Mult(a.MaxSpeed))
}

// Flee steers at full speed away from target while it is closer than
// p.FleeRadius.
func Flee(a *Agent, target cp.Vector, p Params) cp.Vector {
	desired := a.Position.Sub(target)
	d := desired.Length()
	if d == 0 || d >= p.FleeRadius {
		return cp.Vector{}
	}
	return steer(a, common.Normalize(desired).Mult(a.MaxSpeed))
}

// Arrive seeks target and ramps the desired speed down linearly inside
// p.ArriveRadius.
func Arrive(a *Agent, target cp.Vector, p Params) cp.Vector {
	desired := target.Sub(a.Position)
	d := desired.Length()
	speed := a.MaxSpeed
	if d < p.ArriveRadius {
		speed = common.AffineTransform(d, 0, p.ArriveRadius, 0, a.MaxSpeed)
	}
	return steer(a, common.Normalize(desired).Mult(speed))
}

// Wander nudges the persisted wander angle by sample (in [0, 1)) and seeks a
// point on a circle projected ahead of the agent.
func Wander(a *Agent, sample float64, p Params) cp.Vector {
	center := a.Position
	if a.Velocity.LengthSq() > 0 && common.IsFinite(a.Velocity) {
		center = center.Add(common.Normalize(a.Velocity).Mult(p.WanderDistance))
	}

	a.WanderAngle += sample*p.WanderTurn - p.WanderTurn*0.5
	a.WanderAngle = math.Remainder(a.WanderAngle, 2*math.Pi)

	target := center.Add(cp.ForAngle(a.WanderAngle).Mult(p.WanderRadius))
	desired := target.Sub(a.Position)
	if desired.Length() <= 1.0 {
		return cp.Vector{}
	}
	return steer(a, common.Normalize(desired).Mult(a.MaxSpeed))
}
