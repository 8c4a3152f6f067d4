package component

import "github.com/milk9111/steering/waypoint"

type Walker struct {
	Path *waypoint.Walker
	// ShowLabels draws each queued waypoint's label next to it.
	ShowLabels bool
	// AcceptInput lets pointer waypoint events append to this walker.
	AcceptInput bool
}

var WalkerComponent = NewComponent[Walker]()
