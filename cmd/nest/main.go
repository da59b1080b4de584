// seehuhn.de/go/nest - a 2D bitmap nesting engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command nest arranges a set of 2D part outlines onto a build plate
// and prints the resulting placements as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"seehuhn.de/go/nest"
)

const (
	exitOK           = 0
	exitSomeUnplaced = 1
	exitInvalidInput = 2
	exitCancelled    = 130
)

type cliOpts struct {
	jobFile          string
	configFile       string
	precisionMM      float64
	spacingMM        float64
	deltaMM          float64
	deltaRRad        float64
	allowRotations   bool
	multi            bool
	randomIterations int
	threadCount      int
	unplacedPenalty  float64
	verbose          bool
}

func parseCLIOpts() cliOpts {
	var opt cliOpts
	flag.StringVar(&opt.jobFile, "job", "", "path to a JSON job file describing the bed and items (required)")
	flag.StringVar(&opt.configFile, "config", "", "path to a TOML file overriding the flags below")
	flag.Float64Var(&opt.precisionMM, "precision", 0.5, "model units per pixel, in millimeters")
	flag.Float64Var(&opt.spacingMM, "spacing", 1, "minimum clearance between placed parts, in millimeters")
	flag.Float64Var(&opt.deltaMM, "delta", 1, "spiral search step, in millimeters")
	flag.Float64Var(&opt.deltaRRad, "delta-r", nest.DefaultDeltaR, "rotation fan step, in radians")
	flag.BoolVar(&opt.allowRotations, "allow-rotations", true, "try rotated poses, not just angle 0")
	flag.BoolVar(&opt.multi, "multi", false, "run multiple sort orders in parallel and keep the best")
	flag.IntVar(&opt.randomIterations, "random-iterations", 0, "extra random-order attempts when -multi is set")
	flag.IntVar(&opt.threadCount, "threads", 0, "max parallel attempts; 0 means GOMAXPROCS")
	flag.Float64Var(&opt.unplacedPenalty, "unplaced-penalty", nest.DefaultUnplacedPenalty, "score penalty per unplaced item")
	flag.BoolVar(&opt.verbose, "v", false, "print progress to stderr")
	flag.Parse()
	return opt
}

func main() {
	opt := parseCLIOpts()

	if opt.configFile != "" {
		c, err := readConfig(opt.configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidInput)
		}
		applyConfig(&opt, c)
	}

	if opt.jobFile == "" {
		fmt.Fprintln(os.Stderr, "nest: -job is required")
		os.Exit(exitInvalidInput)
	}

	bed, items, err := readJob(opt.jobFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidInput)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := nest.Params{
		PrecisionMM:      opt.precisionMM,
		SpacingMM:        opt.spacingMM,
		DeltaMM:          opt.deltaMM,
		DeltaRRad:        opt.deltaRRad,
		AllowRotations:   opt.allowRotations,
		RandomIterations: opt.randomIterations,
		ThreadCount:      opt.threadCount,
		UnplacedPenalty:  opt.unplacedPenalty,
	}
	if opt.multi {
		params.SortMode = nest.SortMultiple
		if opt.randomIterations > 0 {
			params.RandomSeeds = randomSeeds(opt.randomIterations, len(items))
		}
	}
	if opt.verbose {
		params.Progress = func(fraction float64, message string) {
			fmt.Fprintf(os.Stderr, "nest: %.0f%% %s\n", fraction*100, message)
		}
	}

	resp, err := nest.Arrange(ctx, nest.Request{Items: items, Bed: bed, Params: params})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidInput)
	}

	if err := writeResponse(resp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidInput)
	}

	switch {
	case resp.Cancelled:
		os.Exit(exitCancelled)
	case anyUnplaced(resp):
		os.Exit(exitSomeUnplaced)
	default:
		os.Exit(exitOK)
	}
}

// randomSeeds generates n deterministic permutations of [0,itemCount),
// one per requested -random-iterations attempt. Each permutation is
// seeded by its own index so repeated runs of the same job produce the
// same attempts, matching Params.RandomSeeds' determinism contract.
func randomSeeds(n, itemCount int) [][]int {
	seeds := make([][]int, n)
	for i := 0; i < n; i++ {
		perm := make([]int, itemCount)
		for j := range perm {
			perm[j] = j
		}
		rng := rand.New(rand.NewSource(int64(i)))
		rng.Shuffle(itemCount, func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })
		seeds[i] = perm
	}
	return seeds
}

func anyUnplaced(resp nest.Response) bool {
	for _, p := range resp.PerItem {
		if !p.Placed {
			return true
		}
	}
	return false
}

func applyConfig(opt *cliOpts, c config) {
	if c.PrecisionMM != 0 {
		opt.precisionMM = c.PrecisionMM
	}
	if c.SpacingMM != 0 {
		opt.spacingMM = c.SpacingMM
	}
	if c.DeltaMM != 0 {
		opt.deltaMM = c.DeltaMM
	}
	if c.DeltaRRad != 0 {
		opt.deltaRRad = c.DeltaRRad
	}
	if c.AllowRotations {
		opt.allowRotations = true
	}
	if c.Multi {
		opt.multi = true
	}
	if c.RandomIterations != 0 {
		opt.randomIterations = c.RandomIterations
	}
	if c.ThreadCount != 0 {
		opt.threadCount = c.ThreadCount
	}
	if c.UnplacedPenalty != 0 {
		opt.unplacedPenalty = c.UnplacedPenalty
	}
}
