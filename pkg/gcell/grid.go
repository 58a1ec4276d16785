package gcell

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBadGCellSize is returned when the GCell size or routing area does not
// satisfy invariant 1 of the data model (positive, evenly divisible).
var ErrBadGCellSize = errors.New("gcell: routing area size must be a positive multiple of gcell size")

// ErrBumpMismatch is returned when chip1 and chip2 do not carry identical
// bump index sets (invariant 4).
var ErrBumpMismatch = errors.New("gcell: chip1 and chip2 bump index sets differ")

// ErrBumpOutOfRange is a topology error: a bump resolves outside the grid.
type ErrBumpOutOfRange struct {
	ChipNum int
	Idx     int
	Pos     Point
}

func (e *ErrBumpOutOfRange) Error() string {
	return fmt.Sprintf("gcell: chip %d bump %d at %s is outside the routing area", e.ChipNum, e.Idx, e.Pos)
}

// Grid is the rows x cols GCell lattice for one routing area.
type Grid struct {
	RoutingAreaLowerLeft Point
	GCellSize            Size
	Rows, Cols           int
	Cells                []GCell
}

// At returns the cell at grid coordinate (x, y), x in [0,Cols), y in [0,Rows).
func (g *Grid) At(x, y int) *GCell {
	return &g.Cells[y*g.Cols+x]
}

// CellAt resolves the cell whose lower-left corner is the given absolute
// physical coordinate, or nil if it does not land on a cell boundary inside
// the routing area.
func (g *Grid) CellAt(p Point) *GCell {
	dx := p.X - g.RoutingAreaLowerLeft.X
	dy := p.Y - g.RoutingAreaLowerLeft.Y
	if dx < 0 || dy < 0 || g.GCellSize.W <= 0 || g.GCellSize.H <= 0 {
		return nil
	}
	if dx%g.GCellSize.W != 0 || dy%g.GCellSize.H != 0 {
		return nil
	}
	x, y := dx/g.GCellSize.W, dy/g.GCellSize.H
	if x >= g.Cols || y >= g.Rows {
		return nil
	}
	return g.At(x, y)
}

// Build constructs the GCell lattice, wires neighbor pointers, binds the
// two chips' bumps to their resolved cells, and checks invariants 1-4.
func Build(routingAreaLowerLeft Point, routingAreaSize, gcellSize Size, raw1, raw2 RawChip) (*Grid, *Chip, *Chip, error) {
	if gcellSize.W <= 0 || gcellSize.H <= 0 || routingAreaSize.W <= 0 || routingAreaSize.H <= 0 ||
		routingAreaSize.W%gcellSize.W != 0 || routingAreaSize.H%gcellSize.H != 0 {
		return nil, nil, nil, ErrBadGCellSize
	}

	cols := routingAreaSize.W / gcellSize.W
	rows := routingAreaSize.H / gcellSize.H

	grid := &Grid{
		RoutingAreaLowerLeft: routingAreaLowerLeft,
		GCellSize:            gcellSize,
		Rows:                 rows,
		Cols:                 cols,
		Cells:                make([]GCell, rows*cols),
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			grid.Cells[idx] = GCell{
				LowerLeft: Point{
					X: routingAreaLowerLeft.X + x*gcellSize.W,
					Y: routingAreaLowerLeft.Y + y*gcellSize.H,
				},
				index: idx,
			}
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := grid.At(x, y)
			if x > 0 {
				cell.Left = grid.At(x-1, y)
			}
			if y > 0 {
				cell.Bottom = grid.At(x, y-1)
			}
			if x < cols-1 {
				cell.Right = grid.At(x+1, y)
			}
			if y < rows-1 {
				cell.Top = grid.At(x, y+1)
			}
		}
	}

	chip1, err := bindChip(grid, 1, routingAreaLowerLeft, raw1)
	if err != nil {
		return nil, nil, nil, err
	}
	chip2, err := bindChip(grid, 2, routingAreaLowerLeft, raw2)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := checkIndexSets(chip1, chip2); err != nil {
		return nil, nil, nil, err
	}

	return grid, chip1, chip2, nil
}

func bindChip(grid *Grid, chipNum int, routingAreaLowerLeft Point, raw RawChip) (*Chip, error) {
	chip := &Chip{
		LowerLeft: raw.LowerLeft,
		Size:      raw.Size,
		Bumps:     make([]Bump, len(raw.Bumps)),
	}
	for i, rb := range raw.Bumps {
		pos := Point{X: raw.LowerLeft.X + rb.X, Y: raw.LowerLeft.Y + rb.Y}
		cell := grid.CellAt(pos)
		if cell == nil {
			return nil, &ErrBumpOutOfRange{ChipNum: chipNum, Idx: rb.Idx, Pos: pos}
		}
		chip.Bumps[i] = Bump{Idx: rb.Idx, Position: pos, Cell: cell}
	}
	sort.Slice(chip.Bumps, func(i, j int) bool { return chip.Bumps[i].Idx < chip.Bumps[j].Idx })
	return chip, nil
}

func checkIndexSets(chip1, chip2 *Chip) error {
	if len(chip1.Bumps) != len(chip2.Bumps) {
		return ErrBumpMismatch
	}
	for i := range chip1.Bumps {
		if chip1.Bumps[i].Idx != chip2.Bumps[i].Idx {
			return ErrBumpMismatch
		}
	}
	return nil
}

// Indices returns the shared, ascending bump index list (chip1 == chip2
// after checkIndexSets has passed).
func Indices(chip1 *Chip) []int {
	out := make([]int, len(chip1.Bumps))
	for i, b := range chip1.Bumps {
		out[i] = b.Idx
	}
	return out
}

// BumpByIdx finds the bump with the given index, or nil.
func BumpByIdx(chip *Chip, idx int) *Bump {
	// Bumps are sorted by Idx; binary search keeps this cheap for large nets.
	lo, hi := 0, len(chip.Bumps)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if chip.Bumps[mid].Idx == idx {
			return &chip.Bumps[mid]
		}
		if chip.Bumps[mid].Idx < idx {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return nil
}
