package steering

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/steering/common"
)

// NeighborIndex answers radius queries over a snapshot of agent positions.
// Within visits neighbors in ascending index order and never visits i
// itself.
type NeighborIndex interface {
	Rebuild(positions []cp.Vector)
	Within(i int, radius float64, visit func(j int, d float64))
}

// LinearIndex scans every position for each query.
type LinearIndex struct {
	positions []cp.Vector
}

func NewLinearIndex() *LinearIndex {
	return &LinearIndex{}
}

func (l *LinearIndex) Rebuild(positions []cp.Vector) {
	l.positions = append(l.positions[:0], positions...)
}

func (l *LinearIndex) Within(i int, radius float64, visit func(j int, d float64)) {
	if i < 0 || i >= len(l.positions) {
		return
	}
	p := l.positions[i]
	for j, q := range l.positions {
		if j == i {
			continue
		}
		if d := p.Distance(q); d < radius {
			visit(j, d)
		}
	}
}

type rtreeItem struct {
	idx  int
	rect rtreego.Rect
}

func (it *rtreeItem) Bounds() rtreego.Rect {
	return it.rect
}

// RTreeIndex keeps positions in an R-tree and refines its box hits by exact
// distance.
type RTreeIndex struct {
	positions []cp.Vector
	tree      *rtreego.Rtree
}

func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{}
}

func (r *RTreeIndex) Rebuild(positions []cp.Vector) {
	r.positions = append(r.positions[:0], positions...)
	items := make([]rtreego.Spatial, 0, len(positions))
	for i, p := range positions {
		if !common.IsFinite(p) {
			continue
		}
		items = append(items, &rtreeItem{idx: i, rect: rtreego.Point{p.X, p.Y}.ToRect(0.01)})
	}
	r.tree = rtreego.NewTree(2, 25, 50, items...)
}

func (r *RTreeIndex) Within(i int, radius float64, visit func(j int, d float64)) {
	if r.tree == nil || i < 0 || i >= len(r.positions) || radius <= 0 {
		return
	}
	p := r.positions[i]
	if !common.IsFinite(p) || math.IsInf(radius, 0) {
		return
	}
	box, err := rtreego.NewRect(rtreego.Point{p.X - radius, p.Y - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return
	}
	hits := r.tree.SearchIntersect(box)
	idx := make([]int, 0, len(hits))
	for _, h := range hits {
		if it, ok := h.(*rtreeItem); ok && it.idx != i {
			idx = append(idx, it.idx)
		}
	}
	sort.Ints(idx)
	for _, j := range idx {
		if d := p.Distance(r.positions[j]); d < radius {
			visit(j, d)
		}
	}
}
