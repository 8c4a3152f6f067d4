package component

// Stats accumulates run statistics for the debug overlay and headless
// reports.
type Stats struct {
	Ticks     uint64
	Agents    int
	MaxSpeed  float64
	MeanSpeed float64
	// SpeedViolations counts agent ticks that ended above max speed.
	SpeedViolations int
	Arrivals        int
	FinishedPaths   int
}

var StatsComponent = NewComponent[Stats]()
