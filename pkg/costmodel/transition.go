package costmodel

import "github.com/kittclouds/groute/pkg/gcell"

// Transition computes the incremental cost (§4.B) of moving from u to its
// neighbor v in moveDir, given the direction u itself was entered from
// (uFromDir — gcell.Origin for the route's source cell). isTarget must be
// true exactly when v is the net's destination cell, which forces the
// entering charge to the terminal via-step instead of a plain gamma
// (§4.D's target-adjacency rule: every net must land back on M1).
//
// The eight rows of the source table collapse to one rule: u's layer is
// M1 whenever it was entered by a vertical step (or is the route origin),
// and M2 whenever entered by a horizontal step; a via is charged at u
// whenever the new move's orientation differs from u's layer.
func (m *Model) Transition(u, v *gcell.GCell, moveDir, uFromDir gcell.Direction, isTarget bool) float64 {
	uOnM1 := uFromDir == gcell.Origin || uFromDir == gcell.Bottom || uFromDir == gcell.Top
	horizontal := moveDir == gcell.Left || moveDir == gcell.Right

	var edgeCharge, enteringCharge float64
	if horizontal {
		edgeCharge = m.AlphaDX
		if isTarget {
			enteringCharge = v.ViaStep
		} else {
			enteringCharge = v.GammaM2
		}
		if !uOnM1 {
			// M2 -> M2 continuation, no via at u.
			cost := edgeCharge + enteringCharge
			return cost + m.overflowCharge(u, v, moveDir)
		}
		// M1 -> M2, a via occurs at u.
		cost := edgeCharge + enteringCharge - u.GammaM1 + u.ViaStep
		return cost + m.overflowCharge(u, v, moveDir)
	}

	edgeCharge = m.AlphaDY
	if isTarget {
		enteringCharge = v.ViaStep
	} else {
		enteringCharge = v.GammaM1
	}
	if uOnM1 {
		// M1 -> M1 continuation, no via at u.
		cost := edgeCharge + enteringCharge
		return cost + m.overflowCharge(u, v, moveDir)
	}
	// M2 -> M1, a via occurs at u.
	cost := edgeCharge + enteringCharge - u.GammaM2 + u.ViaStep
	return cost + m.overflowCharge(u, v, moveDir)
}

// overflowCharge applies BetaHalfMax when the edge crossed by moveDir is
// already at or past capacity. Left-ward and bottom-ward moves cross the
// mover's own edge; right-ward and top-ward moves cross the edge owned by
// the cell being entered (§4.B).
func (m *Model) overflowCharge(u, v *gcell.GCell, moveDir gcell.Direction) float64 {
	var saturated bool
	switch moveDir {
	case gcell.Left:
		saturated = Overflow(u.LeftEdgeCount, u.LeftEdgeCapacity)
	case gcell.Right:
		saturated = Overflow(v.LeftEdgeCount, v.LeftEdgeCapacity)
	case gcell.Bottom:
		saturated = Overflow(u.BottomEdgeCount, u.BottomEdgeCapacity)
	case gcell.Top:
		saturated = Overflow(v.BottomEdgeCount, v.BottomEdgeCapacity)
	}
	if saturated {
		return m.BetaHalfMax
	}
	return 0
}

// CommitEdge increments the appropriate edge counter for a move from u to
// v in moveDir. This is the single authoritative mutation of congestion
// state (§4.D) and must only be called during path reconstruction of a
// route that is actually being committed, never speculatively by search.
func CommitEdge(u, v *gcell.GCell, moveDir gcell.Direction) {
	switch moveDir {
	case gcell.Left:
		u.AddRouteLeft()
	case gcell.Right:
		v.AddRouteLeft()
	case gcell.Bottom:
		u.AddRouteBottom()
	case gcell.Top:
		v.AddRouteBottom()
	}
}
