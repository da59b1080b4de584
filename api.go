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

package nest

import (
	"context"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
)

// BedKind selects the build-plate shape.
type BedKind int

const (
	BedRectangle BedKind = iota
	BedCircle
)

// Bed describes the build plate. For BedRectangle, WidthMM and
// HeightMM are used; for BedCircle, DiameterMM is used.
type Bed struct {
	Kind       BedKind
	WidthMM    float64
	HeightMM   float64
	DiameterMM float64
}

// SortMode selects how the Arranger generates attempt orderings.
type SortMode int

const (
	// SortSingle runs exactly one attempt, ordered by (priority desc,
	// area desc).
	SortSingle SortMode = iota

	// SortMultiple runs several attempts — area desc, area asc, and
	// one random permutation per usable entry of Params.RandomSeeds —
	// in parallel and keeps the lowest-scoring one.
	SortMultiple
)

// DefaultDeltaR is the rotation-fan step that reproduces the
// four-angle fan {0, pi/2, pi, 3*pi/2} used by the one live caller in
// original_source.
const DefaultDeltaR = math.Pi / 2

// DefaultUnplacedPenalty is the per-unplaced-item score penalty,
// matching original_source's literal constant. It is large enough to
// dominate any realistic bounding-box term.
const DefaultUnplacedPenalty = 1_000_000.0

// Item is one part to place: its outline and a placement priority.
// Higher priority is placed first.
type Item struct {
	Outline  Outline
	Priority int
}

// Params configures one Arrange call.
type Params struct {
	PrecisionMM float64 // model units per pixel
	SpacingMM   float64 // minimum clearance between placed parts
	DeltaMM     float64 // spiral search step, in model units
	DeltaRRad   float64 // rotation-fan step; ignored when AllowRotations is false

	AllowRotations bool
	SortMode       SortMode

	// RandomIterations is the number of random-order attempts the
	// caller asked for. Arrange does not read it: the random attempts
	// it runs are exactly those given by RandomSeeds.
	RandomIterations int
	// RandomSeeds supplies one permutation of [0,len(items)) per random
	// attempt, for determinism (spec.md §5: "if randomized sorts are
	// enabled, the caller supplies the seed"). Each permutation is
	// applied to the parts that loaded; a permutation whose length
	// differs from that count is skipped.
	RandomSeeds [][]int

	// ThreadCount bounds how many attempts run concurrently. Zero means
	// runtime.GOMAXPROCS(0).
	ThreadCount int

	// UnplacedPenalty is the score contribution of each unplaced item.
	// Zero means DefaultUnplacedPenalty.
	UnplacedPenalty float64

	OnPacked func(PlacedItem)
	Progress func(fraction float64, message string)
}

// Request is the input to Arrange.
type Request struct {
	Items  []Item
	Bed    Bed
	Params Params
}

// PlacedItem is one item's placement result.
type PlacedItem struct {
	Placed      bool
	Translation vec.Vec2 // mm, footprint gravity center on the bed
	RotationRad float64
	BedIndex    int // UnarrangedBedIndex when Placed is false
}

// Response is the output of Arrange.
type Response struct {
	PerItem   []PlacedItem
	Score     float64
	Cancelled bool
}

// Arrange places req.Items onto req.Bed and returns their placements.
//
// InvalidInput and Internal failures are returned as a non-nil error
// implementing *Error; the response is the zero value in that case.
// A part that loads but never fits any rotation, or that fits but
// finds no pose, is recorded per-item in Response.PerItem with
// Placed == false — neither is a returned error (spec.md §7).
func Arrange(ctx context.Context, req Request) (Response, error) {
	params := req.Params
	if params.PrecisionMM <= 0 {
		return Response{}, invalidInputf("precision must be positive, got %g", params.PrecisionMM)
	}
	if params.SpacingMM < 0 {
		return Response{}, invalidInputf("spacing must be non-negative, got %g", params.SpacingMM)
	}
	penalty := params.UnplacedPenalty
	if penalty == 0 {
		penalty = DefaultUnplacedPenalty
	}

	plateWidthPx, plateHeightPx, plateTemplate, err := buildPlate(req.Bed, params.PrecisionMM)
	if err != nil {
		return Response{}, err
	}

	deltaR := params.DeltaRRad
	if deltaR <= 0 {
		deltaR = DefaultDeltaR
	}
	if !params.AllowRotations {
		deltaR = 0 // forces K=1 in LoadPart regardless of DeltaRRad
	}

	items := make([]arrangeItem, len(req.Items))
	for i, it := range req.Items {
		if len(it.Outline.Contour) < 3 {
			return Response{}, invalidInputf("item %d: contour has fewer than 3 vertices", i)
		}
		part, err := LoadPart(it.Outline, it.Priority, params.PrecisionMM, params.SpacingMM, deltaR, plateWidthPx, plateHeightPx)
		if err != nil {
			// A part that fits no rotation is a per-item failure, not a
			// request-level one: record it as permanently unplaced and
			// continue loading the rest.
			items[i] = arrangeItem{part: nil, inputIndex: i}
			continue
		}
		items[i] = arrangeItem{part: part, inputIndex: i}
	}

	stepPixels := int(math.Ceil(params.DeltaMM / params.PrecisionMM))
	if stepPixels < 1 {
		stepPixels = 1
	}
	arranger := &Arranger{
		PrecisionMM:     params.PrecisionMM,
		StepPixels:      stepPixels,
		UnplacedPenalty: penalty,
	}

	loadable := make([]arrangeItem, 0, len(items))
	for _, it := range items {
		if it.part != nil {
			loadable = append(loadable, it)
		}
	}

	orders := attemptOrders(loadable, params)

	threads := params.ThreadCount
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	var (
		mu      sync.Mutex
		best    attemptResult
		haveAny bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, order := range orders {
		order := order
		attemptIdx := i
		g.Go(func() error {
			var progressMsg string
			if len(orders) > 1 {
				progressMsg = "attempt"
			}
			res := arranger.runAttempt(gctx, order, len(req.Items), plateTemplate, plateWidthPx, plateHeightPx, nil)

			mu.Lock()
			if !haveAny || res.score < best.score {
				best = res
				haveAny = true
			}
			mu.Unlock()

			if params.Progress != nil {
				params.Progress(float64(attemptIdx+1)/float64(len(orders)), progressMsg)
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil || best.cancelled {
		return Response{Cancelled: true}, nil
	}

	// Fill in per-item results for parts that failed to load at all
	// (zero usable rotations) — these never entered an attempt.
	perItem := make([]PlacedItem, len(req.Items))
	copy(perItem, best.perItem)
	for i, it := range items {
		if it.part == nil {
			perItem[i] = PlacedItem{Placed: false, BedIndex: UnarrangedBedIndex}
		}
	}

	if params.OnPacked != nil {
		for _, p := range perItem {
			if p.Placed {
				params.OnPacked(p)
			}
		}
	}

	return Response{PerItem: perItem, Score: best.score}, nil
}

// maxPlatePixels bounds a single plate axis. It exists so a
// pathological precision/size ratio is caught as a clean Internal
// error instead of driving NewBitmap into an uncontrolled allocation
// (spec.md §7: "Internal — arithmetic or allocation failures").
const maxPlatePixels = 1 << 20

// mmToPixels converts a millimeter length to a pixel count, reporting
// an Internal error if the division is non-finite or the result would
// exceed maxPlatePixels.
func mmToPixels(mm, precisionMM float64) (int, error) {
	ratio := mm / precisionMM
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, internalf("plate dimension %g mm at precision %g mm is not finite in pixels", mm, precisionMM)
	}
	px := int(math.Ceil(ratio))
	if px <= 0 || px > maxPlatePixels {
		return 0, internalf("plate dimension %g mm at precision %g mm needs %d pixels, exceeding the %d pixel limit", mm, precisionMM, px, maxPlatePixels)
	}
	return px, nil
}

// buildPlate converts a Bed descriptor into pixel dimensions and an
// exclusion-mask Bitmap. For circular plates, pixels outside the
// inscribed disk are pre-marked occupied so the Placer's overlap test
// alone enforces containment; for rectangular plates every pixel
// starts empty.
func buildPlate(bed Bed, precisionMM float64) (widthPx, heightPx int, template *Bitmap, err error) {
	switch bed.Kind {
	case BedRectangle:
		if bed.WidthMM <= 0 || bed.HeightMM <= 0 {
			return 0, 0, nil, invalidInputf("plate dimensions must be positive, got %gx%g", bed.WidthMM, bed.HeightMM)
		}
		widthPx, err = mmToPixels(bed.WidthMM, precisionMM)
		if err != nil {
			return 0, 0, nil, err
		}
		heightPx, err = mmToPixels(bed.HeightMM, precisionMM)
		if err != nil {
			return 0, 0, nil, err
		}
		return widthPx, heightPx, NewBitmap(widthPx, heightPx), nil

	case BedCircle:
		if bed.DiameterMM <= 0 {
			return 0, 0, nil, invalidInputf("plate diameter must be positive, got %g", bed.DiameterMM)
		}
		sizePx, err := mmToPixels(bed.DiameterMM, precisionMM)
		if err != nil {
			return 0, 0, nil, err
		}
		template = NewBitmap(sizePx, sizePx)
		cx := float64(sizePx) / 2
		cy := float64(sizePx) / 2
		radius := float64(sizePx) / 2
		for y := 0; y < sizePx; y++ {
			for x := 0; x < sizePx; x++ {
				dx := float64(x) + 0.5 - cx
				dy := float64(y) + 0.5 - cy
				if dx*dx+dy*dy > radius*radius {
					template.Set(x, y, 1)
				}
			}
		}
		return sizePx, sizePx, template, nil

	default:
		return 0, 0, nil, invalidInputf("unknown bed kind %d", bed.Kind)
	}
}

// attemptOrders produces the orderings to run, per Params.SortMode.
func attemptOrders(items []arrangeItem, params Params) [][]arrangeItem {
	if params.SortMode != SortMultiple {
		return [][]arrangeItem{sortedOrder(items, sortAreaDesc, nil)}
	}

	orders := [][]arrangeItem{
		sortedOrder(items, sortAreaDesc, nil),
		sortedOrder(items, sortAreaAsc, nil),
	}
	for _, seed := range params.RandomSeeds {
		if len(seed) != len(items) {
			continue
		}
		orders = append(orders, sortedOrder(items, sortRandom, seed))
	}
	return orders
}
