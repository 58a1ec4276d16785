package format

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hack-pad/hackpadfs"
)

// EdgeCapacity is one gcell's left/bottom edge capacity pair, in row-major
// order (row = index/cols, col = index%cols) — the same order Grid.Cells
// uses (§4.A, §6).
type EdgeCapacity struct {
	Left, Bottom uint
}

// ParseGCL reads a .gcl file: a single `.ec` command followed by one
// capacity line per gcell, in row-major order, running to EOF (§4.C, §6).
func ParseGCL(fsys hackpadfs.FS, path string, logger *log.Logger) ([]EdgeCapacity, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("format: opening %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}

	var caps []EdgeCapacity
	sawCommand := false

	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		toks := fields(line)

		if !sawCommand {
			if toks[0] != ".ec" {
				logger.Printf("format: %s: unknown command %q", path, toks[0])
				continue
			}
			sawCommand = true
			continue
		}

		if len(toks) < 2 {
			logger.Printf("format: %s: malformed capacity line %q", path, line)
			continue
		}
		left, err1 := strconv.ParseUint(toks[0], 10, 64)
		bottom, err2 := strconv.ParseUint(toks[1], 10, 64)
		if err1 != nil || err2 != nil {
			logger.Printf("format: %s: malformed capacity line %q", path, line)
			continue
		}
		caps = append(caps, EdgeCapacity{Left: uint(left), Bottom: uint(bottom)})
	}

	return caps, nil
}
