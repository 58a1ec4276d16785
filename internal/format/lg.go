package format

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/hack-pad/hackpadfs"
)

// SegmentKind distinguishes an .lg route segment's layer, or marks a via
// between the segment before and after it (§4.C, §6).
type SegmentKind int

const (
	SegM1 SegmentKind = iota
	SegM2
	SegVia
)

// Segment is one token of a net's route, in absolute (world) coordinates.
// X2/Y2 and the coordinates are zero for SegVia, which carries no endpoints
// of its own — it marks a layer change at the previous segment's endpoint.
type Segment struct {
	Kind           SegmentKind
	X1, Y1, X2, Y2 int
}

// Net is one parsed .lg record.
type Net struct {
	Idx      int
	Segments []Segment
}

type lgState int

const (
	lgNet lgState = iota
	lgRoute
)

// ParseLG reads a .lg route file: one `n<idx>` header per net, followed by
// `M1`/`M2`/`via` segment lines terminated by `.end` (§4.C, §6). It is the
// Evaluator's only entry point into solved routes — the router's own
// scratch state never participates in evaluation.
func ParseLG(fsys hackpadfs.FS, path string, logger *log.Logger) ([]Net, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("format: opening %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}

	var nets []Net
	state := lgNet
	var current *Net

	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		toks := fields(line)

		switch state {
		case lgNet:
			if !strings.HasPrefix(toks[0], "n") {
				logger.Printf("format: %s: expected net header, got %q", path, line)
				continue
			}
			idx, perr := strconv.Atoi(toks[0][1:])
			if perr != nil {
				logger.Printf("format: %s: malformed net header %q: %v", path, line, perr)
				continue
			}
			nets = append(nets, Net{Idx: idx})
			current = &nets[len(nets)-1]
			state = lgRoute

		case lgRoute:
			switch toks[0] {
			case "M1", "M2":
				seg, perr := parseSegment(toks)
				if perr != nil {
					logger.Printf("format: %s: malformed %s line %q: %v", path, toks[0], line, perr)
					continue
				}
				if toks[0] == "M2" {
					seg.Kind = SegM2
				}
				current.Segments = append(current.Segments, seg)
			case "via":
				current.Segments = append(current.Segments, Segment{Kind: SegVia})
			case ".end":
				state = lgNet
				current = nil
			default:
				logger.Printf("format: %s: unknown route command %q", path, toks[0])
			}
		}
	}

	return nets, nil
}

func parseSegment(toks []string) (Segment, error) {
	if len(toks) < 5 {
		return Segment{}, fmt.Errorf("expected x1 y1 x2 y2, got %d tokens", len(toks)-1)
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(toks[i+1])
		if err != nil {
			return Segment{}, err
		}
		vals[i] = v
	}
	return Segment{Kind: SegM1, X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}, nil
}
