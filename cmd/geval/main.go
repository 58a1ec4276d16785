// Command geval independently recomputes a solved route set's cost from
// a .lg file against the same grid map, capacities, and cost parameters
// the router used, and prints a per-net cost report (§4.G, §6).
package main

import (
	"fmt"
	"log"
	"os"

	hpos "github.com/hack-pad/hackpadfs/os"

	"github.com/kittclouds/groute/internal/cli"
	"github.com/kittclouds/groute/internal/config"
	"github.com/kittclouds/groute/internal/format"
	"github.com/kittclouds/groute/pkg/costmodel"
	"github.com/kittclouds/groute/pkg/evaluator"
	"github.com/kittclouds/groute/pkg/gcell"
)

const usage = "usage: geval [-config path] <gmp_file> <gcl_file> <cst_file> <lg_file>"

func main() {
	log.SetFlags(0)
	logger := log.New(os.Stderr, "", 0)

	args, configPath := cli.ParseArgs(os.Args[1:])
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	gmpPath, gclPath, cstPath, lgPath := args[0], args[1], args[2], args[3]

	if _, err := config.Load(configPath); err != nil {
		logger.Fatalf("geval: %v", err)
	}

	fsys, err := hpos.NewFS()
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	gmp, err := format.ParseGMP(fsys, cli.ToRelPath(gmpPath), logger)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	grid, chip1, chip2, err := gcell.Build(gmp.RoutingAreaLowerLeft, gmp.RoutingAreaSize, gmp.GCellSize, gmp.Chip1, gmp.Chip2)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	caps, err := format.ParseGCL(fsys, cli.ToRelPath(gclPath), logger)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}
	for i := 0; i < len(caps) && i < len(grid.Cells); i++ {
		grid.Cells[i].LeftEdgeCapacity = caps[i].Left
		grid.Cells[i].BottomEdgeCapacity = caps[i].Bottom
	}

	cst, err := format.ParseCST(fsys, cli.ToRelPath(cstPath), grid.Rows, grid.Cols, logger)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	model, err := costmodel.New(cst.Config, grid, cst.CostM1, cst.CostM2)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	nets, err := format.ParseLG(fsys, cli.ToRelPath(lgPath), logger)
	if err != nil {
		logger.Fatalf("geval: %v", err)
	}

	report := evaluator.Evaluate(grid, model, chip1, chip2, nets)
	for _, m := range report.Mismatches {
		logger.Printf("geval: %s", m)
	}

	if err := report.Print(os.Stdout); err != nil {
		logger.Fatalf("geval: %v", err)
	}
}
