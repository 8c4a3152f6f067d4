package component

// TTL destroys its entity after Frames update ticks. Arrival pings use it.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
