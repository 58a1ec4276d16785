// Package costmodel computes the weighted transition costs the router and
// evaluator both use: intrinsic per-cell layer cost, via cost, and the
// overflow penalty, plus the derived constants that make the per-step
// arithmetic in pkg/router and pkg/evaluator cheap.
package costmodel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kittclouds/groute/pkg/gcell"
)

// Config holds the four weighting coefficients and the via cost, as read
// from a .cst file's .alpha/.beta/.gamma/.delta/.v commands.
type Config struct {
	Alpha, Beta, Gamma, Delta, ViaCost float64
}

// Model is the fully-resolved cost model for one grid: Config plus the
// derived constants and per-cell gamma/via values written onto the grid.
type Model struct {
	Config
	AlphaDX, AlphaDY float64
	BetaHalfMax      float64
	DeltaVia         float64
	MaxCellCost      float64
	MedianCellCost   float64
}

// ErrDimensionMismatch is returned when a cost layer's row/col count does
// not match the grid it is being applied to.
var ErrDimensionMismatch = errors.New("costmodel: cost layer dimensions do not match grid")

// New computes the cost model for grid from row-major M1 and M2 cost
// layers, and writes GammaM1/GammaM2/ViaStep onto every cell of grid.
func New(cfg Config, grid *gcell.Grid, costM1, costM2 []float64) (*Model, error) {
	n := grid.Rows * grid.Cols
	if len(costM1) != n || len(costM2) != n {
		return nil, fmt.Errorf("%w: want %d cells, got M1=%d M2=%d", ErrDimensionMismatch, n, len(costM1), len(costM2))
	}

	m := &Model{Config: cfg}

	nonZero := make([]float64, 0, 2*n)
	for i := range grid.Cells {
		c := &grid.Cells[i]
		c.CostM1 = costM1[i]
		c.CostM2 = costM2[i]
		if c.CostM1 > m.MaxCellCost {
			m.MaxCellCost = c.CostM1
		}
		if c.CostM2 > m.MaxCellCost {
			m.MaxCellCost = c.CostM2
		}
		if c.CostM1 != 0 {
			nonZero = append(nonZero, c.CostM1)
		}
		if c.CostM2 != 0 {
			nonZero = append(nonZero, c.CostM2)
		}
	}
	m.MedianCellCost = median(nonZero)

	m.AlphaDX = cfg.Alpha * float64(grid.GCellSize.W)
	m.AlphaDY = cfg.Alpha * float64(grid.GCellSize.H)
	m.BetaHalfMax = cfg.Beta * 0.5 * m.MaxCellCost
	m.DeltaVia = cfg.Delta * cfg.ViaCost

	for i := range grid.Cells {
		c := &grid.Cells[i]
		c.GammaM1 = cfg.Gamma * c.CostM1
		c.GammaM2 = cfg.Gamma * c.CostM2
		c.ViaStep = m.DeltaVia + (c.GammaM1+c.GammaM2)/2
	}

	return m, nil
}

// median returns the median of xs without mutating the caller's slice. An
// empty population yields 0 — the source's leading-zero `push_back` bug
// (spec.md §9) is intentionally not reproduced; this operates only on
// observed non-zero costs.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Overflow reports whether a just-crossed edge was already saturated at
// the moment of the crossing (count observed before increment).
func Overflow(count, capacity uint) bool {
	return count >= capacity
}
