// Package gcell implements the GCell lattice: the uniform grid of routing
// cells shared by both chips, their neighbor topology, and the bump-to-cell
// binding that anchors every net's source and target.
package gcell

import "fmt"

// Point is an integer physical coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Size is an integer width/height pair.
type Size struct {
	W, H int
}

// Direction identifies which neighbor a routing step moved through, or
// Origin for the first cell of a path (no incoming step).
type Direction int

const (
	Origin Direction = iota
	Left
	Bottom
	Right
	Top
)

func (d Direction) String() string {
	switch d {
	case Origin:
		return "ORIGIN"
	case Left:
		return "LEFT"
	case Bottom:
		return "BOTTOM"
	case Right:
		return "RIGHT"
	case Top:
		return "TOP"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the reverse of a move direction; used to forbid
// immediate U-turns during search.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Bottom:
		return Top
	case Top:
		return Bottom
	default:
		return Origin
	}
}

// GCell is one cell of the routing lattice.
type GCell struct {
	LowerLeft Point

	CostM1, CostM2          float64
	GammaM1, GammaM2        float64
	ViaStep                 float64
	LeftEdgeCapacity        uint
	BottomEdgeCapacity      uint
	LeftEdgeCount           uint
	BottomEdgeCount         uint

	Left, Bottom, Right, Top *GCell

	// index is this cell's position in Grid.Cells (y*Cols+x); used by
	// pkg/router to index flat search-scratch arrays without a lookup.
	index int
}

// Index returns the cell's flat row-major index within its Grid.
func (c *GCell) Index() int { return c.index }

// IsLeftEdgeFull reports whether the west edge has reached capacity.
func (c *GCell) IsLeftEdgeFull() bool { return c.LeftEdgeCount >= c.LeftEdgeCapacity }

// IsBottomEdgeFull reports whether the south edge has reached capacity.
func (c *GCell) IsBottomEdgeFull() bool { return c.BottomEdgeCount >= c.BottomEdgeCapacity }

// AddRouteLeft records one more committed crossing of the west edge.
func (c *GCell) AddRouteLeft() { c.LeftEdgeCount++ }

// AddRouteBottom records one more committed crossing of the south edge.
func (c *GCell) AddRouteBottom() { c.BottomEdgeCount++ }

// Bump is a net terminal on a chip.
type Bump struct {
	Idx      int
	Position Point
	Cell     *GCell
}

// Chip is a placed component carrying an ordered set of bumps.
type Chip struct {
	LowerLeft Point
	Size      Size
	Bumps     []Bump
}

// RawBump is a bump as read from a parser, position relative to its chip.
type RawBump struct {
	Idx int
	X, Y int
}

// RawChip is a chip placement plus its relative bumps, as read from a parser.
type RawChip struct {
	LowerLeft Point
	Size      Size
	Bumps     []RawBump
}
