package waypoint

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
	"gopkg.in/yaml.v3"
)

var ErrUnknownMode = errors.New("waypoint: unknown mode")

// Mode decides what happens to a waypoint once the walker reaches it.
type Mode int

const (
	// OneShot drops the reached waypoint. An empty queue is terminal.
	OneShot Mode = iota
	// Patrol moves the reached waypoint to the back of the queue.
	Patrol
)

func (m Mode) String() string {
	switch m {
	case OneShot:
		return "one_shot"
	case Patrol:
		return "patrol"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "one_shot", "oneshot":
		return OneShot, nil
	case "patrol":
		return Patrol, nil
	}
	return OneShot, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// DefaultThreshold is the fixed arrival distance used when no threshold
// factor is set.
const DefaultThreshold = 1.0

type Waypoint struct {
	Position cp.Vector `yaml:",inline"`
	Label    string    `yaml:"label,omitempty"`
}

func At(x, y float64) Waypoint {
	return Waypoint{Position: cp.Vector{X: x, Y: y}}
}

// Walker moves at constant speed through a queue of waypoints. The head of
// the queue is always the current target.
type Walker struct {
	Position cp.Vector
	Heading  float64
	Speed    float64
	Mode     Mode
	// Threshold is the fixed arrival distance.
	Threshold float64
	// ThresholdFactor, when positive, makes the arrival distance
	// ThresholdFactor*Speed instead of Threshold.
	ThresholdFactor float64

	queue    []Waypoint
	arrivals int
}

func NewWalker(position cp.Vector, speed float64, mode Mode) *Walker {
	return &Walker{
		Position:  position,
		Speed:     speed,
		Mode:      mode,
		Threshold: DefaultThreshold,
	}
}

// Push appends wp to the back of the queue.
func (w *Walker) Push(wp Waypoint) {
	w.queue = append(w.queue, wp)
}

// Reset replaces the queue and clears the arrival count.
func (w *Walker) Reset(wps []Waypoint) {
	w.queue = append(w.queue[:0], wps...)
	w.arrivals = 0
}

// Waypoints returns a copy of the queue, head first.
func (w *Walker) Waypoints() []Waypoint {
	out := make([]Waypoint, len(w.queue))
	copy(out, w.queue)
	return out
}

func (w *Walker) Len() int {
	return len(w.queue)
}

func (w *Walker) Arrivals() int {
	return w.arrivals
}

func (w *Walker) Current() (Waypoint, bool) {
	if len(w.queue) == 0 {
		return Waypoint{}, false
	}
	return w.queue[0], true
}

// Done reports whether a one-shot walker has used up its queue.
func (w *Walker) Done() bool {
	return w.Mode == OneShot && len(w.queue) == 0
}

// Label is the display label of the i-th queued waypoint, its 1-based queue
// position unless one was set.
func (w *Walker) Label(i int) string {
	if i < 0 || i >= len(w.queue) {
		return ""
	}
	if l := w.queue[i].Label; l != "" {
		return l
	}
	return strconv.Itoa(i + 1)
}

func (w *Walker) ArrivalThreshold() float64 {
	if w.ThresholdFactor > 0 {
		return w.ThresholdFactor * w.Speed
	}
	return w.Threshold
}

func (w *Walker) AtWaypoint() bool {
	head, ok := w.Current()
	if !ok {
		return false
	}
	return w.arrived(w.Position.Distance(head.Position))
}

func (w *Walker) arrived(d float64) bool {
	return d == 0 || d < w.ArrivalThreshold()
}

// Update moves the walker dt seconds toward the head of the queue and
// advances the queue on arrival. It returns the reached waypoint, if any.
// An empty queue makes Update a no-op.
func (w *Walker) Update(dt float64) (Waypoint, bool) {
	head, ok := w.Current()
	if !ok {
		return Waypoint{}, false
	}

	step := w.Speed * dt
	if step < 0 || math.IsNaN(step) {
		step = 0
	}
	delta := head.Position.Sub(w.Position)
	if d := delta.Length(); d > 0 {
		w.Heading = common.BearingToTarget(w.Position, head.Position)
		if step >= d {
			w.Position = head.Position
		} else {
			w.Position = w.Position.Add(delta.Mult(step / d))
		}
	}

	if !w.arrived(w.Position.Distance(head.Position)) {
		return Waypoint{}, false
	}
	w.advance()
	w.arrivals++
	return head, true
}

func (w *Walker) advance() {
	head := w.queue[0]
	copy(w.queue, w.queue[1:])
	switch w.Mode {
	case Patrol:
		w.queue[len(w.queue)-1] = head
	default:
		w.queue = w.queue[:len(w.queue)-1]
	}
}

type path struct {
	Mode      string     `yaml:"mode"`
	Waypoints []Waypoint `yaml:"waypoints"`
}

// EncodePath renders the walker's queue as YAML in the layout scenario
// files use for walker waypoints.
func EncodePath(w *Walker) ([]byte, error) {
	out, err := yaml.Marshal(path{Mode: w.Mode.String(), Waypoints: w.Waypoints()})
	if err != nil {
		return nil, fmt.Errorf("waypoint: encode path: %w", err)
	}
	return out, nil
}
