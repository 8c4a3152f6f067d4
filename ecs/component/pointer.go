package component

// Pointer stores per-frame pointer state. X and Y are world coordinates.
type Pointer struct {
	X      float64
	Y      float64
	Active bool
	// AddWaypoint is set on the frame the secondary button was pressed.
	AddWaypoint bool
	// Export is set on the frame the walker path copy key was pressed.
	Export bool
}

var PointerComponent = NewComponent[Pointer]()
