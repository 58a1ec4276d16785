// Package evaluator independently recomputes a solved route set's cost
// from a written .lg file (§4.G). It never touches the router's search
// scratch or the grid's own edge counters — it walks the file's M1/M2/via
// tokens and accumulates cost and congestion into counters of its own, so
// that a report produced here can be trusted to confirm (or refute) what
// the router claimed it did.
package evaluator

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/kittclouds/groute/internal/format"
	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/gcell"
)

// NetReport is one net's recomputed metrics, matching the four quantities
// the original router's own objective is built from: wirelength, overflow
// count, cell cost, and via count, rolled up into a total cost.
type NetReport struct {
	Idx       int
	WL        int
	Overflow  int
	CellCost  float64
	ViaCount  int
	TotalCost float64
}

func (n *NetReport) add(o NetReport) {
	n.WL += o.WL
	n.Overflow += o.Overflow
	n.CellCost += o.CellCost
	n.ViaCount += o.ViaCount
	n.TotalCost += o.TotalCost
}

// Report is the full recomputation result: one row per net plus the
// column-summed total, and any semantic mismatches found along the way
// (start/end point mismatches, forbidden-direction segments, layer
// discipline violations at .end) — present without aborting the run, the
// same tolerant-but-noted posture the parsers take (§7).
type Report struct {
	Nets       []NetReport
	Total      NetReport
	Mismatches []string
}

// Print renders the report as an aligned table, net rows in ascending
// index order followed by a Total row.
func (r *Report) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Net\tWL\tOverflow\tCell Cost\tVia Count\tTotal Cost")
	for _, n := range r.Nets {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.4f\t%d\t%.4f\n", n.Idx, n.WL, n.Overflow, n.CellCost, n.ViaCount, n.TotalCost)
	}
	fmt.Fprintf(tw, "Total\t%d\t%d\t%.4f\t%d\t%.4f\n", r.Total.WL, r.Total.Overflow, r.Total.CellCost, r.Total.ViaCount, r.Total.TotalCost)
	return tw.Flush()
}

// shadow holds the evaluator's own copy of per-gcell edge-usage counters,
// independent of whatever the router already wrote into grid.Cells during
// solving.
type shadow struct {
	left, bottom []uint
}

// Evaluate walks every parsed net's segment list and recomputes its cost
// exactly as the router's cost model defines it, without relying on any
// state the router's own search left behind (§4.G, §8 invariant 5).
func Evaluate(grid *gcell.Grid, model *costmodel.Model, chip1, chip2 *gcell.Chip, nets []format.Net) *Report {
	sh := &shadow{
		left:   make([]uint, len(grid.Cells)),
		bottom: make([]uint, len(grid.Cells)),
	}

	rep := &Report{}
	for _, net := range nets {
		nr, mismatches := evaluateNet(grid, model, chip1, chip2, net, sh)
		rep.Nets = append(rep.Nets, nr)
		rep.Total.add(nr)
		rep.Mismatches = append(rep.Mismatches, mismatches...)
	}

	sort.Slice(rep.Nets, func(i, j int) bool { return rep.Nets[i].Idx < rep.Nets[j].Idx })
	return rep
}

func evaluateNet(grid *gcell.Grid, model *costmodel.Model, chip1, chip2 *gcell.Chip, net format.Net, sh *shadow) (NetReport, []string) {
	nr := NetReport{Idx: net.Idx}
	var mismatches []string

	startBump := gcell.BumpByIdx(chip1, net.Idx)
	endBump := gcell.BumpByIdx(chip2, net.Idx)
	if startBump == nil || endBump == nil {
		mismatches = append(mismatches, fmt.Sprintf("net %d: no matching bump pair", net.Idx))
		return nr, mismatches
	}

	checkStart := true
	passVia := false
	lastM1 := true
	// A co-located net has no segments at all: the router never leaves
	// the start cell, so lastCell seeds from the start bump rather than
	// nil, and its gammaM1 is charged directly (§8 boundary case),
	// matching the router's GammaM1-seeded gScore for a zero-length path.
	lastCell := startBump.Cell
	if len(net.Segments) == 0 {
		nr.CellCost += lastCell.CostM1
		nr.TotalCost += lastCell.GammaM1
	}

	for _, seg := range net.Segments {
		if seg.Kind == format.SegVia {
			if lastM1 {
				if !checkStart {
					nr.CellCost -= lastCell.CostM1
					nr.TotalCost -= lastCell.GammaM1
				}
			} else {
				if !checkStart {
					nr.CellCost -= lastCell.CostM2
					nr.TotalCost -= lastCell.GammaM2
				}
			}
			nr.CellCost += lastCell.CostM1 / 2
			nr.TotalCost += lastCell.GammaM1 / 2
			nr.CellCost += lastCell.CostM2 / 2
			nr.TotalCost += lastCell.GammaM2 / 2
			nr.ViaCount++
			nr.TotalCost += model.DeltaVia
			passVia = true
			continue
		}

		x1g, y1g := cellCoord(grid, seg.X1, seg.Y1)
		x2g, y2g := cellCoord(grid, seg.X2, seg.Y2)
		if x1g < 0 || x1g >= grid.Cols || y1g < 0 || y1g >= grid.Rows {
			mismatches = append(mismatches, fmt.Sprintf("net %d: segment start (%d,%d) outside grid", net.Idx, seg.X1, seg.Y1))
			continue
		}
		u := grid.At(x1g, y1g)

		if checkStart {
			if startBump.Position.X != seg.X1 || startBump.Position.Y != seg.Y1 {
				mismatches = append(mismatches, fmt.Sprintf("net %d: start point mismatch at (%d, %d)", net.Idx, seg.X1, seg.Y1))
			}
			checkStart = false
		}

		if seg.Kind == format.SegM1 {
			if seg.X2 != seg.X1 {
				mismatches = append(mismatches, fmt.Sprintf("net %d: M1 horizontal routing is forbidden", net.Idx))
			}
			if seg.Y2 == seg.Y1 {
				mismatches = append(mismatches, fmt.Sprintf("net %d: M1 zero-length routing is forbidden", net.Idx))
			}
			nr.WL += absInt(seg.Y2 - seg.Y1)
			nr.TotalCost += float64(absInt(seg.Y2-seg.Y1)) * model.Config.Alpha

			if !passVia {
				nr.CellCost += u.CostM1
				nr.TotalCost += u.GammaM1
			}
			passVia = false

			step := 1
			if seg.Y2 < seg.Y1 {
				step = -1
			}
			for y := y1g + step; ; y += step {
				c := grid.At(x1g, y)
				if c == nil {
					break
				}
				nr.CellCost += c.CostM1
				nr.TotalCost += c.GammaM1
				var edgeOwner *gcell.GCell
				if step > 0 {
					edgeOwner = c
				} else {
					edgeOwner = grid.At(x1g, y+1)
				}
				owner := edgeOwner.Index()
				if sh.bottom[owner] >= edgeOwner.BottomEdgeCapacity {
					nr.TotalCost += model.BetaHalfMax
					nr.Overflow++
				}
				sh.bottom[owner]++
				if y == y2g {
					break
				}
			}
			lastCell = grid.At(x2g, y2g)
			lastM1 = true

		} else {
			if seg.Y2 != seg.Y1 {
				mismatches = append(mismatches, fmt.Sprintf("net %d: M2 vertical routing is forbidden", net.Idx))
			}
			if seg.X2 == seg.X1 {
				mismatches = append(mismatches, fmt.Sprintf("net %d: M2 zero-length routing is forbidden", net.Idx))
			}
			nr.WL += absInt(seg.X2 - seg.X1)
			nr.TotalCost += float64(absInt(seg.X2-seg.X1)) * model.Config.Alpha

			if !passVia {
				nr.CellCost += u.CostM2
				nr.TotalCost += u.GammaM2
			}
			passVia = false

			step := 1
			if seg.X2 < seg.X1 {
				step = -1
			}
			for x := x1g + step; ; x += step {
				c := grid.At(x, y1g)
				if c == nil {
					break
				}
				nr.CellCost += c.CostM2
				nr.TotalCost += c.GammaM2
				var edgeOwner *gcell.GCell
				if step > 0 {
					edgeOwner = c
				} else {
					edgeOwner = grid.At(x+1, y1g)
				}
				owner := edgeOwner.Index()
				if sh.left[owner] >= edgeOwner.LeftEdgeCapacity {
					nr.TotalCost += model.BetaHalfMax
					nr.Overflow++
				}
				sh.left[owner]++
				if x == x2g {
					break
				}
			}
			lastCell = grid.At(x2g, y2g)
			lastM1 = false
		}
	}

	if lastCell.LowerLeft.X != endBump.Position.X || lastCell.LowerLeft.Y != endBump.Position.Y {
		mismatches = append(mismatches, fmt.Sprintf("net %d: end point mismatch at %s", net.Idx, lastCell.LowerLeft))
	}
	if passVia == lastM1 {
		mismatches = append(mismatches, fmt.Sprintf("net %d: last routing is not M1", net.Idx))
	}

	return nr, mismatches
}

func cellCoord(grid *gcell.Grid, worldX, worldY int) (int, int) {
	xg := (worldX - grid.RoutingAreaLowerLeft.X) / grid.GCellSize.W
	yg := (worldY - grid.RoutingAreaLowerLeft.Y) / grid.GCellSize.H
	return xg, yg
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
