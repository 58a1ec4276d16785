package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/groute/internal/format"
	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/evaluator"
	"github.com/kittclouds/groute/pkg/gcell"
)

// buildProblem makes a 1x3 gcell strip (10x10 cells) with uniform costs and
// one bump pair at (0,0) on chip1 and (0,20) on chip2, stacked directly
// above it so a net's route is a pure vertical M1 run.
func buildProblem(t *testing.T) (*gcell.Grid, *costmodel.Model, *gcell.Chip, *gcell.Chip) {
	t.Helper()
	chip1 := gcell.RawChip{Size: gcell.Size{W: 10, H: 10}, Bumps: []gcell.RawBump{{Idx: 1, X: 0, Y: 0}}}
	chip2 := gcell.RawChip{LowerLeft: gcell.Point{X: 0, Y: 20}, Size: gcell.Size{W: 10, H: 10}, Bumps: []gcell.RawBump{{Idx: 1, X: 0, Y: 0}}}
	grid, c1, c2, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 10, H: 30}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)

	for i := range grid.Cells {
		grid.Cells[i].LeftEdgeCapacity = 5
		grid.Cells[i].BottomEdgeCapacity = 5
	}
	n := len(grid.Cells)
	costM1 := make([]float64, n)
	costM2 := make([]float64, n)
	for i := range costM1 {
		costM1[i] = 1
		costM2[i] = 1
	}
	model, err := costmodel.New(costmodel.Config{Alpha: 1, Beta: 10, Gamma: 1, Delta: 1, ViaCost: 1}, grid, costM1, costM2)
	require.NoError(t, err)

	return grid, model, c1, c2
}

func TestEvaluateMatchesStraightVerticalRoute(t *testing.T) {
	grid, model, chip1, chip2 := buildProblem(t)
	nets := []format.Net{
		{Idx: 1, Segments: []format.Segment{
			{Kind: format.SegM1, X1: 0, Y1: 0, X2: 0, Y2: 20},
		}},
	}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	require.Empty(t, report.Mismatches)
	require.Len(t, report.Nets, 1)
	assert.Equal(t, 20, report.Nets[0].WL)
	assert.Equal(t, 0, report.Nets[0].ViaCount)
	assert.Equal(t, report.Nets[0].TotalCost, report.Total.TotalCost)
}

func TestEvaluateFlagsStartPointMismatch(t *testing.T) {
	grid, model, chip1, chip2 := buildProblem(t)
	nets := []format.Net{
		{Idx: 1, Segments: []format.Segment{
			{Kind: format.SegM1, X1: 0, Y1: 10, X2: 0, Y2: 20},
		}},
	}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	require.NotEmpty(t, report.Mismatches)
	assert.Contains(t, report.Mismatches[0], "start point mismatch")
}

func TestEvaluateFlagsHorizontalM1Segment(t *testing.T) {
	grid, model, chip1, chip2 := buildProblem(t)
	// dy is nonzero here so the vertical scan loop still terminates at
	// the segment's own endpoint; only the forbidden-horizontal check
	// should fire, not the zero-length check too.
	nets := []format.Net{
		{Idx: 1, Segments: []format.Segment{
			{Kind: format.SegM1, X1: 0, Y1: 0, X2: 10, Y2: 10},
		}},
	}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	found := false
	for _, m := range report.Mismatches {
		if m != "" {
			found = true
		}
	}
	assert.True(t, found, "an M1 segment with nonzero dx must be flagged")
}

func TestEvaluateCountsOverflowOnSaturatedEdge(t *testing.T) {
	grid, model, chip1, chip2 := buildProblem(t)
	grid.At(0, 1).BottomEdgeCapacity = 0
	nets := []format.Net{
		{Idx: 1, Segments: []format.Segment{
			{Kind: format.SegM1, X1: 0, Y1: 0, X2: 0, Y2: 20},
		}},
	}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	assert.Greater(t, report.Total.Overflow, 0)
}

func TestEvaluateCoLocatedNetChargesStartCellGammaM1(t *testing.T) {
	// Both chips place bump 1 at the same absolute gcell, matching the
	// co-located boundary case (§8): the router never leaves the start
	// cell, so the route's .lg record carries no segments at all.
	chip1 := gcell.RawChip{Size: gcell.Size{W: 10, H: 10}, Bumps: []gcell.RawBump{{Idx: 1, X: 0, Y: 0}}}
	chip2 := gcell.RawChip{Size: gcell.Size{W: 10, H: 10}, Bumps: []gcell.RawBump{{Idx: 1, X: 0, Y: 0}}}
	grid, chip1Built, chip2Built, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 10, H: 10}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)

	costM1 := []float64{3}
	costM2 := []float64{3}
	model, err := costmodel.New(costmodel.Config{Alpha: 1, Beta: 10, Gamma: 2, Delta: 1, ViaCost: 1}, grid, costM1, costM2)
	require.NoError(t, err)

	nets := []format.Net{{Idx: 1, Segments: nil}}
	report := evaluator.Evaluate(grid, model, chip1Built, chip2Built, nets)

	assert.Empty(t, report.Mismatches)
	require.Len(t, report.Nets, 1)
	startCell := grid.At(0, 0)
	assert.Equal(t, startCell.GammaM1, report.Nets[0].TotalCost, "matches the router's GammaM1-seeded gScore for a zero-length path")
	assert.Equal(t, 0, report.Nets[0].WL)
	assert.Equal(t, 0, report.Nets[0].ViaCount)
}

func TestEvaluateNoMatchingBumpPairIsReported(t *testing.T) {
	grid, model, chip1, chip2 := buildProblem(t)
	nets := []format.Net{{Idx: 99, Segments: nil}}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	require.NotEmpty(t, report.Mismatches)
	assert.Contains(t, report.Mismatches[0], "no matching bump pair")
}
