package steering

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
)

// Flock is an arena of agents addressed by index. Neighbor queries read the
// arena as it was at the start of the tick.
type Flock struct {
	agents  []Agent
	weights []Weights
	index   NeighborIndex
	dirty   bool
}

// NewFlock returns an empty flock. A nil index falls back to a linear scan.
func NewFlock(index NeighborIndex) *Flock {
	if index == nil {
		index = NewLinearIndex()
	}
	return &Flock{index: index, dirty: true}
}

// Add appends an agent and returns its index.
func (f *Flock) Add(a Agent, w Weights) int {
	f.agents = append(f.agents, a)
	f.weights = append(f.weights, w)
	f.dirty = true
	return len(f.agents) - 1
}

// Reset empties the flock, keeping its capacity.
func (f *Flock) Reset() {
	f.agents = f.agents[:0]
	f.weights = f.weights[:0]
	f.dirty = true
}

func (f *Flock) Len() int {
	return len(f.agents)
}

func (f *Flock) Agent(i int) Agent {
	return f.agents[i]
}

func (f *Flock) SetAgent(i int, a Agent) {
	f.agents[i] = a
	f.dirty = true
}

func (f *Flock) Weights(i int) Weights {
	return f.weights[i]
}

func (f *Flock) ensureIndex() {
	if !f.dirty {
		return
	}
	positions := make([]cp.Vector, len(f.agents))
	for i := range f.agents {
		positions[i] = f.agents[i].Position
	}
	f.index.Rebuild(positions)
	f.dirty = false
}

// Neighbors returns the indices of agents closer than radius to agent i.
func (f *Flock) Neighbors(i int, radius float64) []int {
	f.ensureIndex()
	var out []int
	f.index.Within(i, radius, func(j int, _ float64) { out = append(out, j) })
	return out
}

// Separate steers agent i away from neighbors inside p.SeparationRange,
// weighting closer neighbors more.
func (f *Flock) Separate(i int, p Params) cp.Vector {
	f.ensureIndex()
	self := &f.agents[i]
	var sum cp.Vector
	count := 0
	f.index.Within(i, p.SeparationRange, func(j int, d float64) {
		if d == 0 {
			// Coincident: push the pair apart along x by index order.
			if i < j {
				sum = sum.Add(cp.Vector{X: -1})
			} else {
				sum = sum.Add(cp.Vector{X: 1})
			}
			count++
			return
		}
		diff := common.Normalize(self.Position.Sub(f.agents[j].Position)).Mult(1 / d)
		sum = sum.Add(diff)
		count++
	})
	if count == 0 {
		return cp.Vector{}
	}
	return f.steerAverage(self, sum.Mult(1/float64(count)))
}

// Align steers agent i toward the mean velocity of neighbors inside
// p.AlignRange.
func (f *Flock) Align(i int, p Params) cp.Vector {
	f.ensureIndex()
	self := &f.agents[i]
	var sum cp.Vector
	count := 0
	f.index.Within(i, p.AlignRange, func(j int, _ float64) {
		sum = sum.Add(f.agents[j].Velocity)
		count++
	})
	if count == 0 {
		return cp.Vector{}
	}
	return f.steerAverage(self, sum.Mult(1/float64(count)))
}

// Cohere seeks the centroid of neighbors inside p.CohesionRange.
func (f *Flock) Cohere(i int, p Params) cp.Vector {
	f.ensureIndex()
	self := &f.agents[i]
	var sum cp.Vector
	count := 0
	f.index.Within(i, p.CohesionRange, func(j int, _ float64) {
		sum = sum.Add(f.agents[j].Position)
		count++
	})
	if count == 0 {
		return cp.Vector{}
	}
	return Seek(self, sum.Mult(1/float64(count)), p)
}

func (f *Flock) steerAverage(self *Agent, avg cp.Vector) cp.Vector {
	dir := common.Normalize(avg)
	if dir.LengthSq() == 0 {
		return cp.Vector{}
	}
	return steer(self, dir.Mult(self.MaxSpeed))
}

// StepInput is everything a tick needs besides the arena itself.
type StepInput struct {
	Params Params
	// Target is the pointer target for seek, flee and arrive.
	Target    cp.Vector
	HasTarget bool
	// Weights, when set, replaces every member's own weights for this tick.
	Weights *Weights
	Source  Source
	Bounds  Bounds
}

// Step computes every member's forces from the arena as it stands, then
// integrates and constrains all members.
func (f *Flock) Step(in StepInput) {
	f.ensureIndex()
	next := make([]Agent, len(f.agents))
	for i := range f.agents {
		a := f.agents[i]
		w := f.weights[i]
		if in.Weights != nil {
			w = *in.Weights
		}
		f.accumulate(i, &a, w, in)
		next[i] = a
	}
	if adv, ok := in.Source.(Advancer); ok {
		adv.Advance()
	}
	for i := range next {
		next[i].Integrate()
		in.Bounds.Apply(&next[i])
	}
	f.agents = next
	f.dirty = true
}

func (f *Flock) accumulate(i int, a *Agent, w Weights, in StepInput) {
	p := in.Params
	if w.Separate != 0 {
		a.ApplyForce(f.Separate(i, p).Mult(w.Separate))
	}
	if w.Align != 0 {
		a.ApplyForce(f.Align(i, p).Mult(w.Align))
	}
	if w.Cohere != 0 {
		a.ApplyForce(f.Cohere(i, p).Mult(w.Cohere))
	}
	if w.Wander != 0 {
		sample := 0.5
		if in.Source != nil {
			sample = in.Source.Sample(i)
		}
		a.ApplyForce(Wander(a, sample, p).Mult(w.Wander))
	}
	if !in.HasTarget {
		return
	}
	if w.Seek != 0 {
		a.ApplyForce(Seek(a, in.Target, p).Mult(w.Seek))
	}
	if w.Flee != 0 {
		a.ApplyForce(Flee(a, in.Target, p).Mult(w.Flee))
	}
	if w.Arrive != 0 {
		a.ApplyForce(Arrive(a, in.Target, p).Mult(w.Arrive))
	}
}
