package gcell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/groute/pkg/gcell"
)

func twoChipRaw() (gcell.RawChip, gcell.RawChip) {
	chip1 := gcell.RawChip{
		LowerLeft: gcell.Point{X: 0, Y: 0},
		Size:      gcell.Size{W: 20, H: 20},
		Bumps: []gcell.RawBump{
			{Idx: 1, X: 0, Y: 0},
			{Idx: 2, X: 10, Y: 10},
		},
	}
	chip2 := gcell.RawChip{
		LowerLeft: gcell.Point{X: 0, Y: 30},
		Size:      gcell.Size{W: 20, H: 20},
		Bumps: []gcell.RawBump{
			{Idx: 2, X: 0, Y: 0},
			{Idx: 1, X: 10, Y: 0},
		},
	}
	return chip1, chip2
}

func TestBuildWiresNeighborsAndBumps(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	grid, c1, c2, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)

	assert.Equal(t, 5, grid.Cols)
	assert.Equal(t, 5, grid.Rows)
	assert.Len(t, grid.Cells, 25)

	origin := grid.At(0, 0)
	assert.Nil(t, origin.Left)
	assert.Nil(t, origin.Bottom)
	assert.Same(t, grid.At(1, 0), origin.Right)
	assert.Same(t, grid.At(0, 1), origin.Top)

	assert.Equal(t, 2, len(c1.Bumps))
	assert.Equal(t, 1, c1.Bumps[0].Idx, "bumps sorted ascending by index")
	assert.Equal(t, grid.At(0, 0), c1.Bumps[0].Cell)

	assert.Equal(t, 1, c2.Bumps[0].Idx)
}

func TestBuildRejectsNonDivisibleRoutingArea(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	_, _, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 55, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	assert.ErrorIs(t, err, gcell.ErrBadGCellSize)
}

func TestBuildRejectsBumpMismatch(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	chip2.Bumps = chip2.Bumps[:1]
	_, _, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	assert.ErrorIs(t, err, gcell.ErrBumpMismatch)
}

func TestBuildRejectsOutOfRangeBump(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	chip1.Bumps[0].X = 1000
	_, _, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	var oor *gcell.ErrBumpOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 1, oor.ChipNum)
}

func TestBumpByIdxBinarySearch(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	_, c1, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)

	b := gcell.BumpByIdx(c1, 2)
	require.NotNil(t, b)
	assert.Equal(t, 2, b.Idx)
	assert.Nil(t, gcell.BumpByIdx(c1, 99))
}

func TestIndicesSharedAscending(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	_, c1, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, gcell.Indices(c1))
}

func TestCellAtRejectsOffBoundary(t *testing.T) {
	chip1, chip2 := twoChipRaw()
	grid, _, _, err := gcell.Build(gcell.Point{X: 0, Y: 0}, gcell.Size{W: 50, H: 50}, gcell.Size{W: 10, H: 10}, chip1, chip2)
	require.NoError(t, err)

	assert.NotNil(t, grid.CellAt(gcell.Point{X: 20, Y: 30}))
	assert.Nil(t, grid.CellAt(gcell.Point{X: 25, Y: 30}), "not on a gcell boundary")
	assert.Nil(t, grid.CellAt(gcell.Point{X: -10, Y: 0}), "outside the routing area")
	assert.Nil(t, grid.CellAt(gcell.Point{X: 1000, Y: 1000}), "outside the routing area")
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, gcell.Right, gcell.Left.Opposite())
	assert.Equal(t, gcell.Left, gcell.Right.Opposite())
	assert.Equal(t, gcell.Top, gcell.Bottom.Opposite())
	assert.Equal(t, gcell.Bottom, gcell.Top.Opposite())
}

func TestEdgeFullAndCommit(t *testing.T) {
	c := &gcell.GCell{LeftEdgeCapacity: 1, BottomEdgeCapacity: 1}
	assert.False(t, c.IsLeftEdgeFull())
	c.AddRouteLeft()
	assert.True(t, c.IsLeftEdgeFull())

	assert.False(t, c.IsBottomEdgeFull())
	c.AddRouteBottom()
	assert.True(t, c.IsBottomEdgeFull())
}
