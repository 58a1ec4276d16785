// Package sequencer orders a net list into a random permutation, drives
// the single-net router across it, and falls back to the monotone L
// router once a wall-clock budget is exhausted (§4.E).
package sequencer

import (
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/gcell"
	"github.com/kittclouds/groute/pkg/router"
)

// DefaultSeed is the fixed PRNG seed embedded for reproducibility (§6),
// carried over from the original project's `router.setSeed(1257652952)`.
const DefaultSeed = 1257652952

// DefaultTimeBudget is the default wall-clock budget (§6) before the
// sequencer switches remaining nets to the L-pattern fallback.
const DefaultTimeBudget = 590 * time.Second

// Config controls one Solve call.
type Config struct {
	Seed       uint64
	TimeBudget time.Duration
}

// DefaultConfig returns the spec's compiled-in defaults.
func DefaultConfig() Config {
	return Config{Seed: DefaultSeed, TimeBudget: DefaultTimeBudget}
}

// Result is the outcome of one solve: the committed routes, sorted by
// index, and the total objective value.
type Result struct {
	Routes    []*router.Route
	TotalCost float64
}

// Solve routes every shared bump index between chip1 and chip2 in a
// seeded-random order, committing edge usage into grid as it goes so
// later nets see the congestion earlier ones created (§4.E, §5).
func Solve(cfg Config, grid *gcell.Grid, model *costmodel.Model, chip1, chip2 *gcell.Chip, logger *log.Logger) (*Result, error) {
	indices := gcell.Indices(chip1)

	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	perm := rng.Perm(len(indices))

	rt := router.New(grid, model, logger)
	start := time.Now()

	routes := make([]*router.Route, 0, len(indices))
	totalCost := 0.0

	for _, p := range perm {
		idx := indices[p]
		b1 := gcell.BumpByIdx(chip1, idx)
		b2 := gcell.BumpByIdx(chip2, idx)

		var rte *router.Route
		var err error
		if cfg.TimeBudget <= 0 || time.Since(start) > cfg.TimeBudget {
			rte, err = rt.FastL(b1.Cell, b2.Cell)
		} else {
			rte, err = rt.Route(b1.Cell, b2.Cell)
		}
		if err != nil {
			if logger != nil {
				logger.Printf("sequencer: aborting solve, net %d: %v", idx, err)
			}
			return &Result{TotalCost: math.Inf(1)}, err
		}

		rte.Idx = idx
		routes = append(routes, rte)
		totalCost += rte.Cost
	}

	sort.Slice(routes, func(i, j int) bool { return routes[i].Idx < routes[j].Idx })

	return &Result{Routes: routes, TotalCost: totalCost}, nil
}
