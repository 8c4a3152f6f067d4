package steering

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

var ErrUnknownBoundsMode = errors.New("steering: unknown bounds mode")

// BoundsMode selects what happens when an agent leaves the play area.
type BoundsMode int

const (
	BoundsNone BoundsMode = iota
	// BoundsWrap teleports an agent leaving the box grown by Margin to the
	// opposite grown edge.
	BoundsWrap
	// BoundsBounce keeps agents inside the box shrunk by Margin and reflects
	// the velocity component that crossed it.
	BoundsBounce
)

func (m BoundsMode) String() string {
	switch m {
	case BoundsNone:
		return "none"
	case BoundsWrap:
		return "wrap"
	case BoundsBounce:
		return "bounce"
	default:
		return fmt.Sprintf("BoundsMode(%d)", int(m))
	}
}

func ParseBoundsMode(s string) (BoundsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BoundsNone, nil
	case "wrap":
		return BoundsWrap, nil
	case "bounce":
		return BoundsBounce, nil
	}
	return BoundsNone, fmt.Errorf("%w: %q", ErrUnknownBoundsMode, s)
}

// Bounds constrains agents to a play area.
type Bounds struct {
	Box    cp.BB
	Mode   BoundsMode
	Margin float64
}

func NewBounds(width, height float64, mode BoundsMode, margin float64) Bounds {
	return Bounds{Box: cp.BB{L: 0, B: 0, R: width, T: height}, Mode: mode, Margin: margin}
}

// Apply constrains a in place.
func (b Bounds) Apply(a *Agent) {
	switch b.Mode {
	case BoundsWrap:
		a.Position.X = wrapAxis(a.Position.X, b.Box.L-b.Margin, b.Box.R+b.Margin)
		a.Position.Y = wrapAxis(a.Position.Y, b.Box.B-b.Margin, b.Box.T+b.Margin)
	case BoundsBounce:
		a.Position.X, a.Velocity.X = bounceAxis(a.Position.X, a.Velocity.X, b.Box.L+b.Margin, b.Box.R-b.Margin)
		a.Position.Y, a.Velocity.Y = bounceAxis(a.Position.Y, a.Velocity.Y, b.Box.B+b.Margin, b.Box.T-b.Margin)
	}
}

func wrapAxis(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return hi
	case v > hi:
		return lo
	}
	return v
}

func bounceAxis(p, v, lo, hi float64) (float64, float64) {
	if lo > hi {
		mid := (lo + hi) / 2
		return mid, 0
	}
	switch {
	case p < lo:
		return lo, math.Abs(v)
	case p > hi:
		return hi, -math.Abs(v)
	}
	return p, v
}
