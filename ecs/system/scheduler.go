package system

import (
	"fmt"

	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/scenarios"
)

// PingPrefab marks reached waypoints.
const PingPrefab = "ping.yaml"

// NewScenarioScheduler returns the systems that run sc, in tick order. The
// script system is included only when the scenario names a script. respawn
// may be nil when nothing can rebuild the world.
func NewScenarioScheduler(sc *scenarios.Scenario, pointer PointerSource, respawn func()) (*ecs.Scheduler, error) {
	if sc == nil {
		return nil, fmt.Errorf("scheduler: nil scenario")
	}
	s := ecs.NewScheduler(
		NewClockSystem(),
		NewInputSystem(pointer),
		NewReloadSystem(sc.Name, respawn),
	)
	if sc.Script != "" {
		script, err := LoadScriptSystem(sc.Script)
		if err != nil {
			return nil, fmt.Errorf("scheduler: %s: %w", sc.Name, err)
		}
		s.Add(script)
	}
	s.Add(NewSteeringSystem())
	s.Add(NewWaypointSystem(PingPrefab))
	s.Add(NewTTLSystem())
	s.Add(NewStatsSystem())
	return s, nil
}
