// Package router implements the single-net router (§4.D): a layer-aware
// Dijkstra search between one bump pair, plus the monotone L-pattern
// fallback used when the sequencer's time budget runs out (§4.E).
package router

import (
	"container/heap"
	"errors"
	"log"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/gcell"
)

// ErrNotFound is returned when the open set empties before the target is
// reached (§4.D, §7 "Search" error kind).
var ErrNotFound = errors.New("router: no path between source and target")

// Route is one net's committed path, in source-to-target order.
type Route struct {
	Idx  int
	Path []*gcell.GCell
	Cost float64
}

// Router runs single-net searches against one grid/cost-model pair. It
// holds no state between calls other than reusable scratch buffers sized
// to the grid, so a single Router can serve an entire sequencer run.
type Router struct {
	grid   *gcell.Grid
	model  *costmodel.Model
	Logger *log.Logger

	gScore   []float64
	parent   []int
	fromDir  []gcell.Direction
	closed   *bitset.BitSet
	inOpen   *bitset.BitSet
}

// New creates a Router over grid/model, allocating search scratch sized to
// the grid once (reset, not reallocated, on every Route call — Design
// Note §9's flat-scratch-array recommendation).
func New(grid *gcell.Grid, model *costmodel.Model, logger *log.Logger) *Router {
	n := len(grid.Cells)
	return &Router{
		grid:    grid,
		model:   model,
		Logger:  logger,
		gScore:  make([]float64, n),
		parent:  make([]int, n),
		fromDir: make([]gcell.Direction, n),
		closed:  bitset.New(uint(n)),
		inOpen:  bitset.New(uint(n)),
	}
}

// neighborMove pairs a move direction with the neighbor pointer it reads,
// inspected in a fixed order (left, bottom, right, top) so that equal-cost
// ties resolve deterministically (§8 scenario 3).
type neighborMove struct {
	dir  gcell.Direction
	cell func(*gcell.GCell) *gcell.GCell
}

var neighborOrder = [4]neighborMove{
	{gcell.Left, func(c *gcell.GCell) *gcell.GCell { return c.Left }},
	{gcell.Bottom, func(c *gcell.GCell) *gcell.GCell { return c.Bottom }},
	{gcell.Right, func(c *gcell.GCell) *gcell.GCell { return c.Right }},
	{gcell.Top, func(c *gcell.GCell) *gcell.GCell { return c.Top }},
}

// Route finds the cheapest layer-aware path from source to target and
// commits its edge usage into the grid (the single authoritative
// congestion mutation, §4.D). It mutates only search scratch plus the
// committed path's edge counters — never speculative state for paths it
// rejects.
func (r *Router) Route(source, target *gcell.GCell) (*Route, error) {
	n := len(r.gScore)
	for i := 0; i < n; i++ {
		r.gScore[i] = math.Inf(1)
		r.parent[i] = -1
		r.fromDir[i] = gcell.Origin
	}
	r.closed.ClearAll()
	r.inOpen.ClearAll()

	srcIdx := source.Index()
	targetIdx := target.Index()

	r.gScore[srcIdx] = source.GammaM1
	r.inOpen.Set(uint(srcIdx))

	open := &searchHeap{{idx: srcIdx, gScore: r.gScore[srcIdx]}}
	heap.Init(open)

	found := false
	for open.Len() > 0 {
		top := heap.Pop(open).(searchItem)
		if r.closed.Test(uint(top.idx)) || top.gScore != r.gScore[top.idx] {
			continue // stale lazy-deleted entry
		}
		r.closed.Set(uint(top.idx))

		if top.idx == targetIdx {
			found = true
			break
		}

		u := &r.grid.Cells[top.idx]
		for _, nm := range neighborOrder {
			v := nm.cell(u)
			if v == nil {
				continue
			}
			vIdx := v.Index()
			if r.closed.Test(uint(vIdx)) {
				continue
			}
			if nm.dir == r.fromDir[top.idx] {
				continue // would immediately reverse into u's own parent
			}

			isTarget := vIdx == targetIdx
			cost := r.model.Transition(u, v, nm.dir, r.fromDir[top.idx], isTarget)
			tentative := r.gScore[top.idx] + cost
			if tentative < r.gScore[vIdx] {
				r.gScore[vIdx] = tentative
				r.parent[vIdx] = top.idx
				r.fromDir[vIdx] = nm.dir.Opposite()
				heap.Push(open, searchItem{idx: vIdx, gScore: tentative})
			}
		}
	}

	if !found {
		if r.Logger != nil {
			r.Logger.Printf("router: NOT_FOUND from %s to %s", source.LowerLeft, target.LowerLeft)
		}
		return nil, ErrNotFound
	}

	return r.reconstruct(srcIdx, targetIdx), nil
}

// reconstruct walks parent pointers from target back to source, commits
// each crossed edge's counter (the only authoritative congestion mutation
// in the system), and returns the path in source-to-target order.
func (r *Router) reconstruct(srcIdx, targetIdx int) *Route {
	var revIdx []int
	for i := targetIdx; i != -1; i = r.parent[i] {
		revIdx = append(revIdx, i)
		if i == srcIdx {
			break
		}
	}
	path := make([]*gcell.GCell, len(revIdx))
	for i, idx := range revIdx {
		path[len(revIdx)-1-i] = &r.grid.Cells[idx]
	}

	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		moveDir := r.fromDir[v.Index()].Opposite()
		costmodel.CommitEdge(u, v, moveDir)
	}

	return &Route{Path: path, Cost: r.gScore[targetIdx]}
}
