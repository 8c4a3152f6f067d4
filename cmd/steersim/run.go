package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/ecs/entity"
	"github.com/milk9111/steering/ecs/system"
	"github.com/milk9111/steering/scenarios"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Scenario  string
	Ticks     int
	Seed      int64
	FrameTime float64
	// Pointer feeds input; nil runs with the pointer inactive.
	Pointer system.PointerSource
}

// Report summarizes a headless run.
type Report struct {
	RunID           string  `yaml:"run_id"`
	Scenario        string  `yaml:"scenario"`
	Seed            int64   `yaml:"seed"`
	Ticks           uint64  `yaml:"ticks"`
	Agents          int     `yaml:"agents"`
	MaxSpeed        float64 `yaml:"max_speed"`
	MeanSpeed       float64 `yaml:"mean_speed"`
	SpeedViolations int     `yaml:"speed_violations"`
	Arrivals        int     `yaml:"arrivals"`
	FinishedPaths   int     `yaml:"finished_paths"`
}

// Run simulates a scenario without a window on a fixed frame time.
func Run(opts Options) (*Report, error) {
	if opts.Ticks < 0 {
		return nil, fmt.Errorf("steersim: negative tick count %d", opts.Ticks)
	}
	if opts.FrameTime <= 0 {
		return nil, fmt.Errorf("steersim: frame time must be positive, got %v", opts.FrameTime)
	}
	sc, err := scenarios.Load(opts.Scenario)
	if err != nil {
		return nil, err
	}
	seed := sc.ResolveSeed(opts.Seed)

	w := ecs.NewWorld()
	sim, err := entity.SpawnScenario(w, sc, seed, common.NewFixedTimer(opts.FrameTime))
	if err != nil {
		return nil, err
	}
	pointer := opts.Pointer
	if pointer == nil {
		pointer = system.PointerFunc(func() system.PointerState { return system.PointerState{} })
	}
	scheduler, err := system.NewScenarioScheduler(sc, pointer, nil)
	if err != nil {
		return nil, err
	}

	for i := 0; i < opts.Ticks; i++ {
		scheduler.Update(w)
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Scenario: sc.Name,
		Seed:     seed,
		Ticks:    sim.Tick,
	}
	if e, ok := w.First(component.StatsComponent.Kind()); ok {
		if st, ok := ecs.Get(w, e, component.StatsComponent.Kind()); ok {
			report.Agents = st.Agents
			report.MaxSpeed = st.MaxSpeed
			report.MeanSpeed = st.MeanSpeed
			report.SpeedViolations = st.SpeedViolations
			report.Arrivals = st.Arrivals
			report.FinishedPaths = st.FinishedPaths
		}
	}
	return report, nil
}

func (r *Report) Write(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("steersim: write report: %w", err)
	}
	return enc.Close()
}
