// Command groute solves a two-chip bump-to-bump global routing problem:
// it reads a grid map, edge capacities, and cost parameters, runs the
// sequencer over every shared bump index, and writes the resulting
// routes to a .lg file (§4, §6).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hack-pad/hackpadfs"
	hpos "github.com/hack-pad/hackpadfs/os"

	"github.com/kittclouds/groute/internal/cli"
	"github.com/kittclouds/groute/internal/config"
	"github.com/kittclouds/groute/internal/format"
	"github.com/kittclouds/groute/pkg/cache"
	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/gcell"
	"github.com/kittclouds/groute/pkg/router"
	"github.com/kittclouds/groute/pkg/sequencer"
)

const usage = "usage: groute [-config path] <gmp_file> <gcl_file> <cst_file> <lg_file>"

func main() {
	log.SetFlags(0)
	logger := log.New(os.Stderr, "", 0)

	args, configPath := cli.ParseArgs(os.Args[1:])
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	gmpPath, gclPath, cstPath, lgPath := args[0], args[1], args[2], args[3]

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	fsys, err := hpos.NewFS()
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	grid, chip1, chip2, model := buildProblem(fsys, gmpPath, gclPath, cstPath, logger)

	var result *sequencer.Result
	var solveCache *cache.Cache
	var cacheKey string
	if cfg.CachePath != "" {
		solveCache, err = cache.Open(cfg.CachePath)
		if err != nil {
			logger.Fatalf("groute: %v", err)
		}
		defer solveCache.Close()

		gmpBytes, _ := hackpadfs.ReadFile(fsys, cli.ToRelPath(gmpPath))
		gclBytes, _ := hackpadfs.ReadFile(fsys, cli.ToRelPath(gclPath))
		cstBytes, _ := hackpadfs.ReadFile(fsys, cli.ToRelPath(cstPath))
		cacheKey = cache.Key(gmpBytes, gclBytes, cstBytes)

		totalCost, cached, ok, err := solveCache.Get(cacheKey)
		if err != nil {
			logger.Printf("groute: cache lookup failed, solving fresh: %v", err)
		} else if ok {
			logger.Printf("groute: cache hit, total cost %.4f", totalCost)
			routes := make([]*router.Route, len(cached))
			for i, cr := range cached {
				path := make([]*gcell.GCell, len(cr.Path))
				for j, p := range cr.Path {
					path[j] = grid.CellAt(gcell.Point{X: p.X, Y: p.Y})
				}
				routes[i] = &router.Route{Idx: cr.Idx, Path: path, Cost: cr.Cost}
			}
			result = &sequencer.Result{Routes: routes, TotalCost: totalCost}
		}
	}

	if result == nil {
		result, err = sequencer.Solve(sequencer.Config{Seed: cfg.Seed, TimeBudget: cfg.TimeBudget}, grid, model, chip1, chip2, logger)
		if err != nil {
			logger.Fatalf("groute: solve failed: %v", err)
		}
		if solveCache != nil {
			if err := solveCache.Put(cacheKey, result.TotalCost, result.Routes); err != nil {
				logger.Printf("groute: cache store failed: %v", err)
			}
		}
	}

	netRoutes := make([]format.NetRoute, len(result.Routes))
	for i, r := range result.Routes {
		netRoutes[i] = format.NetRoute{Idx: r.Idx, Path: r.Path}
	}
	if err := format.WriteLG(fsys, cli.ToRelPath(lgPath), netRoutes); err != nil {
		logger.Fatalf("groute: %v", err)
	}

	logger.Printf("groute: routed %d nets, total cost %.4f", len(result.Routes), result.TotalCost)
}

// buildProblem loads the grid map, capacities, and cost tables and
// assembles the grid, both chips, and the cost model from them.
func buildProblem(fsys hackpadfs.FS, gmpPath, gclPath, cstPath string, logger *log.Logger) (*gcell.Grid, *gcell.Chip, *gcell.Chip, *costmodel.Model) {
	gmp, err := format.ParseGMP(fsys, cli.ToRelPath(gmpPath), logger)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	grid, chip1, chip2, err := gcell.Build(gmp.RoutingAreaLowerLeft, gmp.RoutingAreaSize, gmp.GCellSize, gmp.Chip1, gmp.Chip2)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	caps, err := format.ParseGCL(fsys, cli.ToRelPath(gclPath), logger)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}
	for i := 0; i < len(caps) && i < len(grid.Cells); i++ {
		grid.Cells[i].LeftEdgeCapacity = caps[i].Left
		grid.Cells[i].BottomEdgeCapacity = caps[i].Bottom
	}

	cst, err := format.ParseCST(fsys, cli.ToRelPath(cstPath), grid.Rows, grid.Cols, logger)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	model, err := costmodel.New(cst.Config, grid, cst.CostM1, cst.CostM2)
	if err != nil {
		logger.Fatalf("groute: %v", err)
	}

	return grid, chip1, chip2, model
}
