package component

import "github.com/milk9111/steering/steering"

// Vehicle is a steered agent.
type Vehicle struct {
	Agent   steering.Agent
	Weights steering.Weights
	// OwnWeights marks weights set by the prefab. Scenario weights, reloads
	// and script overrides leave them alone.
	OwnWeights bool
	// MaxSpeed and MaxForce are prefab overrides; zero follows the
	// simulation params.
	MaxSpeed float64
	MaxForce float64
}

var VehicleComponent = NewComponent[Vehicle]()
