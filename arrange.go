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
	"sort"

	"seehuhn.de/go/geom/vec"
)

// UnarrangedBedIndex marks a PlacedItem that was never placed.
const UnarrangedBedIndex = -1

// arrangeItem is one Part paired with its position in the caller's
// input order, so results can be reassembled in that order after
// sorting for placement.
type arrangeItem struct {
	part       *Part
	inputIndex int
}

// attemptResult is one pass of the Arranger over a single plate.
type attemptResult struct {
	perItem   []PlacedItem // indexed by inputIndex
	score     float64
	cancelled bool
}

// Arranger orders parts, drives the Placer per item against a single
// plate Bitmap, and scores the resulting arrangement.
type Arranger struct {
	PrecisionMM     float64
	StepPixels      int
	UnplacedPenalty float64
}

// runAttempt places every part, in the given order, onto a fresh
// plate bitmap (a clone of the caller-provided exclusion mask, e.g.
// a circular plate's pre-marked exterior). One item failing to place
// does not stop the pass; it is recorded UNARRANGED and the loop
// continues.
func (a *Arranger) runAttempt(ctx context.Context, order []arrangeItem, totalItems int, plateTemplate *Bitmap, plateWidthPx, plateHeightPx int, onPacked func(PlacedItem)) attemptResult {
	plate := plateTemplate.Clone()
	placer := NewPlacer(a.StepPixels)

	result := attemptResult{perItem: make([]PlacedItem, totalItems)}

	var bboxMinX, bboxMinY = math.Inf(1), math.Inf(1)
	var bboxMaxX, bboxMaxY = math.Inf(-1), math.Inf(-1)
	occupiedPixels := 0
	unplacedCount := 0

	for _, it := range order {
		if ctx.Err() != nil {
			result.cancelled = true
			return result
		}

		pose, ok := placer.Place(ctx, plate, it.part, plateWidthPx, plateHeightPx)
		if !ok {
			result.perItem[it.inputIndex] = PlacedItem{Placed: false, BedIndex: UnarrangedBedIndex}
			unplacedCount++
			continue
		}

		cx, cy := Commit(plate, it.part, pose)
		rot := it.part.Rotations[pose.RotationIndex]

		placed := PlacedItem{
			Placed:      true,
			Translation: pixelToModel(cx, cy, a.PrecisionMM),
			RotationRad: rot.Angle,
			BedIndex:    0,
		}
		result.perItem[it.inputIndex] = placed
		occupiedPixels += rot.Footprint.Count()

		minX := float64(cx-rot.Footprint.CX) * a.PrecisionMM
		minY := float64(cy-rot.Footprint.CY) * a.PrecisionMM
		maxX := float64(cx-rot.Footprint.CX+rot.Footprint.Width) * a.PrecisionMM
		maxY := float64(cy-rot.Footprint.CY+rot.Footprint.Height) * a.PrecisionMM
		bboxMinX = math.Min(bboxMinX, minX)
		bboxMinY = math.Min(bboxMinY, minY)
		bboxMaxX = math.Max(bboxMaxX, maxX)
		bboxMaxY = math.Max(bboxMaxY, maxY)

		if onPacked != nil {
			onPacked(placed)
		}
	}

	bboxArea := 0.0
	if bboxMaxX > bboxMinX && bboxMaxY > bboxMinY {
		bboxArea = (bboxMaxX - bboxMinX) * (bboxMaxY - bboxMinY)
	}
	occupiedArea := float64(occupiedPixels) * a.PrecisionMM * a.PrecisionMM
	density := 0.0
	if bboxArea > 0 {
		density = occupiedArea / bboxArea
	}

	result.score = bboxArea*(2-density) + a.UnplacedPenalty*float64(unplacedCount)
	return result
}

func pixelToModel(cx, cy int, precisionMM float64) vec.Vec2 {
	return vec.Vec2{X: float64(cx) * precisionMM, Y: float64(cy) * precisionMM}
}

// sortMode selects how sortedOrder produces the arrangement order for
// one attempt: sortAreaDesc (the spec default),
// sortAreaAsc, or sortRandom (seeded by the caller for determinism).
type sortMode int

const (
	sortAreaDesc sortMode = iota
	sortAreaAsc
	sortRandom
)

func sortedOrder(items []arrangeItem, mode sortMode, shuffleSeed []int) []arrangeItem {
	order := make([]arrangeItem, len(items))
	copy(order, items)

	switch mode {
	case sortRandom:
		// shuffleSeed is a caller-supplied permutation of [0,len); applying
		// it keeps the attempt reproducible without this package importing
		// math/rand itself (the public API owns the seed, per spec.md §5's
		// "caller supplies the seed" determinism rule).
		permuted := make([]arrangeItem, len(order))
		for i, j := range shuffleSeed {
			permuted[i] = order[j]
		}
		order = permuted
	default:
		less := func(i, j int) bool {
			pi, pj := order[i].part.Priority, order[j].part.Priority
			if pi != pj {
				return pi > pj
			}
			ai, aj := order[i].part.Outline.Area(), order[j].part.Outline.Area()
			if mode == sortAreaAsc {
				return ai < aj
			}
			return ai > aj
		}
		sort.SliceStable(order, less)
	}
	return order
}
