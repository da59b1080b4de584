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
)

// Pose is a successful Placer result: which rotation of the fan was
// used, and the top-left pixel offset at which its dilated collision
// Bitmap was tested (not yet the offset the footprint is blitted at —
// see Commit).
type Pose struct {
	RotationIndex int
	X, Y          int
}

// Placer runs the deterministic spiral search for one Part against a
// cumulative plate Bitmap.
type Placer struct {
	// StepPixels is the ring radius increment, max(1, ceil(delta/p)).
	StepPixels int
}

// NewPlacer returns a Placer with the given step size, clamped to at
// least 1 pixel.
func NewPlacer(stepPixels int) *Placer {
	if stepPixels < 1 {
		stepPixels = 1
	}
	return &Placer{StepPixels: stepPixels}
}

// Place searches outward from the plate's pixel center for the first
// rotation and position at which the part's dilated footprint fits
// within the plate bounds and does not overlap already-placed
// material. Rotations are tried in index order before position at
// each ring; within a ring, dy is the outer loop and dx the inner
// loop, both ascending, and only pixels with max(|dx|,|dy|) == r are
// tested (the ring's interior was already tested at smaller radii).
//
// ctx is checked before each ring; a cancelled context aborts the
// search and returns (Pose{}, false).
func (pl *Placer) Place(ctx context.Context, plate *Bitmap, part *Part, plateWidthPx, plateHeightPx int) (Pose, bool) {
	maxRadius := plateWidthPx
	if plateHeightPx > maxRadius {
		maxRadius = plateHeightPx
	}

	plateCX := plateWidthPx / 2
	plateCY := plateHeightPx / 2

	for r := 0; r <= maxRadius; r += pl.StepPixels {
		if ctx.Err() != nil {
			return Pose{}, false
		}

		for k := range part.Rotations {
			rot := &part.Rotations[k]
			if !rot.Fits {
				continue
			}

			originX := plateCX - rot.Bitmap.CX
			originY := plateCY - rot.Bitmap.CY

			for dy := -r; dy <= r; dy += pl.StepPixels {
				for dx := -r; dx <= r; dx += pl.StepPixels {
					if r > 0 && abs(dx) < r && abs(dy) < r {
						continue
					}

					x := originX + dx
					y := originY + dy
					if x < 0 || y < 0 || x+rot.Bitmap.Width > plateWidthPx || y+rot.Bitmap.Height > plateHeightPx {
						continue
					}
					if !rot.Bitmap.Overlaps(plate, x, y) {
						return Pose{RotationIndex: k, X: x, Y: y}, true
					}
				}
			}
		}
	}

	return Pose{}, false
}

// Commit blits the part's non-dilated footprint for the chosen
// rotation onto plate, re-centered inside the dilated search
// footprint so that adjacent parts share spacing margin rather than
// doubling it. It returns the footprint's gravity-center pixel
// coordinates on the plate, for conversion back to model units.
func Commit(plate *Bitmap, part *Part, pose Pose) (cx, cy int) {
	rot := &part.Rotations[pose.RotationIndex]
	offsetX := pose.X + (rot.Bitmap.Width-rot.Footprint.Width)/2
	offsetY := pose.Y + (rot.Bitmap.Height-rot.Footprint.Height)/2
	plate.Write(rot.Footprint, offsetX, offsetY)
	return offsetX + rot.Footprint.CX, offsetY + rot.Footprint.CY
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
