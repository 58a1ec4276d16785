package format

import (
	"errors"
	"fmt"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/groute/pkg/gcell"
)

// ErrInvalidStep is returned by WriteLG when a route's path takes a step
// that changes both axes (a diagonal) or neither (a repeated cell) — M1
// carries vertical moves only and M2 carries horizontal moves only, so
// every step must change exactly one axis (§4.F, §7 "Route-commit
// invalid").
var ErrInvalidStep = errors.New("format: route step changes both or neither axis")

// NetRoute is the subset of a solved route the writer needs: its net
// index and the grid cells it passes through in source-to-target order.
type NetRoute struct {
	Idx  int
	Path []*gcell.GCell
}

// WriteLG renders a set of solved routes as a .lg file: each net's
// gcell-to-gcell path is coalesced into maximal same-layer runs emitted as
// single M1/M2 segments in absolute coordinates, with a `via` token at
// every layer change, terminated by `.end` (§4.F, §6). Routing always
// starts and ends on M1 (§4.D), so a leading via precedes the first
// segment when it is M2, and a trailing via follows the last segment
// when it is M2.
//
// The coalesced form is what makes the file compact; after ParseLG reads
// the segments back, the evaluator expands each one into per-gcell cost
// contributions.
//
// A step that changes both or neither axis stops the whole write: WriteLG
// returns ErrInvalidStep for that net and the file is not written.
func WriteLG(fsys hackpadfs.FS, path string, routes []NetRoute) error {
	var buf []byte

	for _, nr := range routes {
		segs, err := coalesce(nr.Path)
		if err != nil {
			return fmt.Errorf("format: net %d: %w", nr.Idx, err)
		}

		buf = append(buf, fmt.Sprintf("n%d\n", nr.Idx)...)
		if len(segs) > 0 && segs[0].Kind == SegM2 {
			buf = append(buf, "via\n"...)
		}
		for i, seg := range segs {
			if i > 0 {
				buf = append(buf, "via\n"...)
			}
			tag := "M1"
			if seg.Kind == SegM2 {
				tag = "M2"
			}
			buf = append(buf, fmt.Sprintf("%s %d %d %d %d\n", tag, seg.X1, seg.Y1, seg.X2, seg.Y2)...)
		}
		if len(segs) > 0 && segs[len(segs)-1].Kind == SegM2 {
			buf = append(buf, "via\n"...)
		}
		buf = append(buf, ".end\n"...)
	}

	if err := hackpadfs.WriteFullFile(fsys, path, buf, 0644); err != nil {
		return fmt.Errorf("format: writing %s: %w", path, err)
	}
	return nil
}

// coalesce walks a gcell path and merges consecutive same-axis steps into
// single segments, one per maximal run on a single layer.
func coalesce(path []*gcell.GCell) ([]Segment, error) {
	if len(path) < 2 {
		return nil, nil
	}

	var segs []Segment
	runStart := path[0]
	prev := path[0]
	var runKind SegmentKind
	haveRun := false

	for i := 1; i < len(path); i++ {
		cur := path[i]
		dx := cur.LowerLeft.X - prev.LowerLeft.X
		dy := cur.LowerLeft.Y - prev.LowerLeft.Y

		var kind SegmentKind
		switch {
		case dx != 0 && dy == 0:
			kind = SegM2
		case dy != 0 && dx == 0:
			kind = SegM1
		default:
			return nil, ErrInvalidStep
		}

		if haveRun && kind != runKind {
			segs = append(segs, Segment{
				Kind: runKind,
				X1:   runStart.LowerLeft.X, Y1: runStart.LowerLeft.Y,
				X2: prev.LowerLeft.X, Y2: prev.LowerLeft.Y,
			})
			runStart = prev
		}
		runKind = kind
		haveRun = true
		prev = cur
	}

	segs = append(segs, Segment{
		Kind: runKind,
		X1:   runStart.LowerLeft.X, Y1: runStart.LowerLeft.Y,
		X2: prev.LowerLeft.X, Y2: prev.LowerLeft.Y,
	})

	return segs, nil
}
