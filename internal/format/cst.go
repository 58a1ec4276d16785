package format

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/groute/pkg/costmodel"
)

// CST is the parsed contents of a .cst cost file: the four scalar cost
// parameters, the via cost, and the two layers' per-gcell cost tables in
// row-major order (§4.B, §4.C, §6).
type CST struct {
	Config          costmodel.Config
	CostM1, CostM2  []float64
}

type cstState int

const (
	cstCommand cstState = iota
	cstViaCost
	cstLayer
)

// ParseCST reads a .cst file's `.alpha`/`.beta`/`.gamma`/`.delta`/`.v`/`.l`
// sections (§4.C, §6). rows and cols size the two `.l` layer tables; a `.l`
// block supplies rows lines of cols values each, first M1 then M2.
func ParseCST(fsys hackpadfs.FS, path string, rows, cols int, logger *log.Logger) (*CST, error) {
	lines, err := readLines(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("format: opening %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}

	cst := &CST{
		CostM1: make([]float64, rows*cols),
		CostM2: make([]float64, rows*cols),
	}

	state := cstCommand
	currentLayer := 0
	currentRow := 0

	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		toks := fields(line)

		switch state {
		case cstCommand:
			switch toks[0] {
			case ".l":
				if currentLayer > 1 {
					logger.Printf("format: %s: unexpected extra .l block", path)
					continue
				}
				state = cstLayer
			case ".v":
				state = cstViaCost
			case ".alpha":
				cst.Config.Alpha, err = parseScalar(toks)
				if err != nil {
					logger.Printf("format: %s: malformed .alpha line %q: %v", path, line, err)
				}
			case ".beta":
				cst.Config.Beta, err = parseScalar(toks)
				if err != nil {
					logger.Printf("format: %s: malformed .beta line %q: %v", path, line, err)
				}
			case ".gamma":
				cst.Config.Gamma, err = parseScalar(toks)
				if err != nil {
					logger.Printf("format: %s: malformed .gamma line %q: %v", path, line, err)
				}
			case ".delta":
				cst.Config.Delta, err = parseScalar(toks)
				if err != nil {
					logger.Printf("format: %s: malformed .delta line %q: %v", path, line, err)
				}
			default:
				logger.Printf("format: %s: unknown command %q", path, toks[0])
			}

		case cstViaCost:
			v, perr := strconv.ParseFloat(toks[0], 64)
			if perr != nil {
				logger.Printf("format: %s: malformed via cost line %q: %v", path, line, perr)
			} else {
				cst.Config.ViaCost = v
			}
			state = cstCommand

		case cstLayer:
			if len(toks) < cols {
				logger.Printf("format: %s: layer row %d wants %d values, got %d", path, currentRow, cols, len(toks))
			} else {
				dest := cst.CostM1
				if currentLayer == 1 {
					dest = cst.CostM2
				}
				for x := 0; x < cols; x++ {
					v, perr := strconv.ParseFloat(toks[x], 64)
					if perr != nil {
						logger.Printf("format: %s: malformed cost %q at row %d col %d: %v", path, toks[x], currentRow, x, perr)
						continue
					}
					dest[currentRow*cols+x] = v
				}
			}
			currentRow++
			if currentRow == rows {
				currentRow = 0
				currentLayer++
				state = cstCommand
			}
		}
	}

	return cst, nil
}

func parseScalar(toks []string) (float64, error) {
	if len(toks) < 2 {
		return 0, fmt.Errorf("expected a value, got %d tokens", len(toks)-1)
	}
	return strconv.ParseFloat(toks[1], 64)
}
