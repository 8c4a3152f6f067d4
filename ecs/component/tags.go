package component

type BoidTag struct{}

var BoidTagComponent = NewComponent[BoidTag]()

type WalkerTag struct{}

var WalkerTagComponent = NewComponent[WalkerTag]()

// TargetTag marks the entity drawn at the pointer target.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()
