package scenarios

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/prefabs"
	"github.com/milk9111/steering/steering"
	"github.com/milk9111/steering/waypoint"
)

var ErrInvalidScenario = errors.New("scenarios: invalid scenario")

// Scenario is one simulation variant: the play area, the steering tuning
// and what to spawn.
type Scenario struct {
	Name       string             `yaml:"name"`
	Title      string             `yaml:"title"`
	Resolution string             `yaml:"resolution"`
	Background *prefabs.YAMLColor `yaml:"background"`
	// Seed fixes the spawn and wander randomness; zero picks one per run.
	Seed   int64      `yaml:"seed"`
	Bounds BoundsSpec `yaml:"bounds"`
	// Neighbors selects the neighbor index: "linear" or "rtree".
	Neighbors string `yaml:"neighbors"`
	// Wander selects the wander source: "rand" or "noise".
	Wander  string           `yaml:"wander"`
	Params  steering.Params  `yaml:"params"`
	Weights steering.Weights `yaml:"weights"`
	// Script names a tengo script that may override weights every tick.
	Script string `yaml:"script"`
	// Target names the prefab drawn at the pointer, if any.
	Target  string        `yaml:"target"`
	Agents  []AgentGroup  `yaml:"agents"`
	Walkers []WalkerGroup `yaml:"walkers"`
}

type BoundsSpec struct {
	Mode   string  `yaml:"mode"`
	Margin float64 `yaml:"margin"`
}

// AgentGroup spawns Count agents from Prefab. Without a fixed position they
// are scattered over the whole play area.
type AgentGroup struct {
	Prefab string   `yaml:"prefab"`
	Count  int      `yaml:"count"`
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	// Spread scatters agents this far around a fixed position.
	Spread float64 `yaml:"spread"`
	// AtRest spawns agents with zero velocity.
	AtRest bool `yaml:"at_rest"`
}

type WalkerGroup struct {
	Prefab          string              `yaml:"prefab"`
	X               float64             `yaml:"x"`
	Y               float64             `yaml:"y"`
	Speed           float64             `yaml:"speed"`
	Mode            string              `yaml:"mode"`
	Threshold       float64             `yaml:"threshold"`
	ThresholdFactor float64             `yaml:"threshold_factor"`
	ShowLabels      *bool               `yaml:"show_labels"`
	AcceptInput     bool                `yaml:"accept_input"`
	Waypoints       []waypoint.Waypoint `yaml:"waypoints"`
}

// Validate checks names, modes and tuning.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScenario)
	}
	if _, ok := common.Resolutions[s.resolutionKey()]; !ok {
		return fmt.Errorf("%w: %s: unknown resolution %q", ErrInvalidScenario, s.Name, s.Resolution)
	}
	if _, err := steering.ParseBoundsMode(s.Bounds.Mode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidScenario, s.Name, err)
	}
	if s.Bounds.Margin < 0 {
		return fmt.Errorf("%w: %s: negative bounds margin", ErrInvalidScenario, s.Name)
	}
	switch s.Neighbors {
	case "", "linear", "rtree":
	default:
		return fmt.Errorf("%w: %s: unknown neighbor index %q", ErrInvalidScenario, s.Name, s.Neighbors)
	}
	switch s.Wander {
	case "", "rand", "noise":
	default:
		return fmt.Errorf("%w: %s: unknown wander source %q", ErrInvalidScenario, s.Name, s.Wander)
	}
	if err := s.SteeringParams().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidScenario, s.Name, err)
	}
	for i, g := range s.Agents {
		if g.Prefab == "" {
			return fmt.Errorf("%w: %s: agents[%d]: missing prefab", ErrInvalidScenario, s.Name, i)
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: %s: agents[%d]: negative count", ErrInvalidScenario, s.Name, i)
		}
	}
	for i, wg := range s.Walkers {
		if wg.Prefab == "" {
			return fmt.Errorf("%w: %s: walkers[%d]: missing prefab", ErrInvalidScenario, s.Name, i)
		}
		if wg.Mode != "" {
			if _, err := waypoint.ParseMode(wg.Mode); err != nil {
				return fmt.Errorf("%w: %s: walkers[%d]: %w", ErrInvalidScenario, s.Name, i, err)
			}
		}
		if wg.Speed < 0 || wg.Threshold < 0 || wg.ThresholdFactor < 0 {
			return fmt.Errorf("%w: %s: walkers[%d]: negative speed or threshold", ErrInvalidScenario, s.Name, i)
		}
	}
	return nil
}

func (s *Scenario) resolutionKey() string {
	key := strings.ToLower(strings.TrimSpace(s.Resolution))
	if key == "" {
		return "hd"
	}
	return key
}

// Size is the play area in pixels.
func (s *Scenario) Size() common.Resolution {
	return common.Resolutions[s.resolutionKey()]
}

// SteeringParams fills unset tuning from the defaults.
func (s *Scenario) SteeringParams() steering.Params {
	return s.Params.WithDefaults()
}

func (s *Scenario) SteeringBounds() steering.Bounds {
	mode, _ := steering.ParseBoundsMode(s.Bounds.Mode)
	size := s.Size()
	return steering.NewBounds(float64(size.Width), float64(size.Height), mode, s.Bounds.Margin)
}

func (s *Scenario) NeighborIndex() steering.NeighborIndex {
	if s.Neighbors == "rtree" {
		return steering.NewRTreeIndex()
	}
	return steering.NewLinearIndex()
}

func (s *Scenario) WanderSource(seed int64) steering.Source {
	if s.Wander == "noise" {
		return steering.NewNoiseSource(seed, 0)
	}
	return steering.NewRandSource(seed)
}

// ResolveSeed picks the run seed: a non-zero override wins, then the
// scenario seed, then the clock.
func (s *Scenario) ResolveSeed(override int64) int64 {
	if override != 0 {
		return override
	}
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}

// AgentCount is the number of steered agents the scenario spawns.
func (s *Scenario) AgentCount() int {
	n := 0
	for _, g := range s.Agents {
		n += g.Count
	}
	return n
}
