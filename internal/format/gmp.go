package format

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/groute/pkg/gcell"
)

// GMP is the parsed contents of a .gmp grid-map file (§6).
type GMP struct {
	RoutingAreaLowerLeft gcell.Point
	RoutingAreaSize      gcell.Size
	GCellSize            gcell.Size
	Chip1, Chip2         gcell.RawChip
}

type gmpState int

const (
	gmpCommand gmpState = iota
	gmpRoutingArea
	gmpGCellSize
	gmpChip1
	gmpBump
	gmpChip2
)

// ParseGMP reads a .gmp file's `.ra`/`.g`/`.c`/`.b` sections (§4.C, §6).
// Malformed lines are logged and skipped; parsing resumes at the next
// command token (§7).
func ParseGMP(fsys hackpadfs.FS, path string, logger *log.Logger) (*GMP, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("format: opening %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}

	gmp := &GMP{}
	state := gmpCommand
	loadingChip1 := false

	for _, line := range lines {
		if isBlank(line) {
			if state == gmpBump {
				state = gmpCommand
			}
			continue
		}
		toks := fields(line)

		switch state {
		case gmpCommand:
			switch toks[0] {
			case ".ra":
				state = gmpRoutingArea
			case ".g":
				state = gmpGCellSize
			case ".c":
				if loadingChip1 {
					state = gmpChip2
					loadingChip1 = false
				} else {
					state = gmpChip1
					loadingChip1 = true
				}
			case ".b":
				state = gmpBump
			default:
				logger.Printf("format: %s: unknown command %q", path, toks[0])
			}

		case gmpRoutingArea:
			x0, y0, w, h, perr := parse4Ints(toks)
			if perr != nil {
				logger.Printf("format: %s: malformed .ra line %q: %v", path, line, perr)
			} else {
				gmp.RoutingAreaLowerLeft = gcell.Point{X: x0, Y: y0}
				gmp.RoutingAreaSize = gcell.Size{W: w, H: h}
			}
			state = gmpCommand

		case gmpGCellSize:
			dx, dy, perr := parse2Ints(toks)
			if perr != nil {
				logger.Printf("format: %s: malformed .g line %q: %v", path, line, perr)
			} else {
				gmp.GCellSize = gcell.Size{W: dx, H: dy}
			}
			state = gmpCommand

		case gmpChip1:
			x, y, w, h, perr := parse4Ints(toks)
			if perr != nil {
				logger.Printf("format: %s: malformed chip1 .c line %q: %v", path, line, perr)
			} else {
				gmp.Chip1.LowerLeft = gcell.Point{X: x + gmp.RoutingAreaLowerLeft.X, Y: y + gmp.RoutingAreaLowerLeft.Y}
				gmp.Chip1.Size = gcell.Size{W: w, H: h}
			}
			state = gmpCommand

		case gmpChip2:
			x, y, w, h, perr := parse4Ints(toks)
			if perr != nil {
				logger.Printf("format: %s: malformed chip2 .c line %q: %v", path, line, perr)
			} else {
				gmp.Chip2.LowerLeft = gcell.Point{X: x + gmp.RoutingAreaLowerLeft.X, Y: y + gmp.RoutingAreaLowerLeft.Y}
				gmp.Chip2.Size = gcell.Size{W: w, H: h}
			}
			state = gmpCommand

		case gmpBump:
			idx, x, y, perr := parseBump(toks)
			if perr != nil {
				logger.Printf("format: %s: malformed bump line %q: %v", path, line, perr)
				continue
			}
			rb := gcell.RawBump{Idx: idx, X: x, Y: y}
			if loadingChip1 {
				gmp.Chip1.Bumps = append(gmp.Chip1.Bumps, rb)
			} else {
				gmp.Chip2.Bumps = append(gmp.Chip2.Bumps, rb)
			}
		}
	}

	return gmp, nil
}

func parse2Ints(toks []string) (a, b int, err error) {
	if len(toks) < 2 {
		return 0, 0, fmt.Errorf("expected 2 values, got %d tokens", len(toks))
	}
	a, err = strconv.Atoi(toks[0])
	if err != nil {
		return 0, 0, err
	}
	b, err = strconv.Atoi(toks[1])
	return a, b, err
}

func parse4Ints(toks []string) (a, b, c, d int, err error) {
	if len(toks) < 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected 4 values, got %d tokens", len(toks))
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		vals[i], err = strconv.Atoi(toks[i])
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func parseBump(toks []string) (idx, x, y int, err error) {
	if len(toks) < 3 {
		return 0, 0, 0, fmt.Errorf("expected idx x y, got %d tokens", len(toks))
	}
	idx, err = strconv.Atoi(toks[0])
	if err != nil {
		return 0, 0, 0, err
	}
	x, err = strconv.Atoi(toks[1])
	if err != nil {
		return 0, 0, 0, err
	}
	y, err = strconv.Atoi(toks[2])
	return idx, x, y, err
}
