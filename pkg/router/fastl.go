package router

import (
	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/gcell"
)

// FastL is the monotone "L" fallback (§4.E, "fast_router"): walk
// horizontally until the column matches the target, then vertically.
// It is invoked instead of Route when the sequencer's wall-clock budget
// has been exhausted. Cost accounting and edge commits use the same
// costmodel.Transition/CommitEdge the Dijkstra search uses, so the
// evaluator's independent recomputation agrees with it exactly (§8,
// invariant 5).
func (r *Router) FastL(source, target *gcell.GCell) (*Route, error) {
	cols := r.grid.Cols
	sx, sy := source.Index()%cols, source.Index()/cols
	tx, ty := target.Index()%cols, target.Index()/cols

	path := []*gcell.GCell{source}
	cur := source
	for sx != tx {
		var next *gcell.GCell
		if tx > sx {
			next = cur.Right
			sx++
		} else {
			next = cur.Left
			sx--
		}
		path = append(path, next)
		cur = next
	}
	for sy != ty {
		var next *gcell.GCell
		if ty > sy {
			next = cur.Top
			sy++
		} else {
			next = cur.Bottom
			sy--
		}
		path = append(path, next)
		cur = next
	}

	fromDir := make([]gcell.Direction, len(path))
	gScore := source.GammaM1
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		moveDir := moveDirection(u, v)
		fromDir[i+1] = moveDir.Opposite()
		isTarget := i+2 == len(path)
		gScore += r.model.Transition(u, v, moveDir, fromDir[i], isTarget)
		costmodel.CommitEdge(u, v, moveDir)
	}

	return &Route{Path: path, Cost: gScore}, nil
}

// moveDirection identifies which of u's four neighbor pointers equals v.
func moveDirection(u, v *gcell.GCell) gcell.Direction {
	switch v {
	case u.Left:
		return gcell.Left
	case u.Bottom:
		return gcell.Bottom
	case u.Right:
		return gcell.Right
	default:
		return gcell.Top
	}
}
