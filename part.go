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

import "math"

// Rotation is one entry of a Part's rotation fan: a dilated collision
// footprint ready to be tested by the Placer, and the matching
// non-dilated footprint committed to the plate on success.
type Rotation struct {
	Angle     float64
	Bitmap    *Bitmap // dilated by the spacing margin; used for collision testing
	Footprint *Bitmap // not dilated; blitted onto the plate on placement
	Fits      bool    // false if Bitmap exceeds the plate's pixel dimensions
}

// Part holds one item's original outline plus a precomputed rotation
// fan, each entry rasterized and dilated once up front so placement
// never re-rasterizes.
type Part struct {
	Outline  Outline
	Priority int

	Rotations []Rotation // len == K
	Surface   float64    // mean occupied-pixel count across fitting rotations
}

// LoadPart builds a Part's rotation fan.
//
// K = ceil(2*pi/deltaR) angles are rasterized, or K=1 at angle 0 when
// deltaR <= 0 (Arrange passes 0 when AllowRotations is false; spec.md
// §9's second open question). Rotation 0 is rasterized directly; k>0
// is obtained by rotating rotation 0's un-dilated footprint and
// trimming it, then every rotation is dilated by the spacing margin —
// matching original_source's rotate-then-trim approach
// more closely than re-rasterizing the rotated outline (which would
// drift from the analytic outline under repeated sampling).
//
// A rotation whose dilated Bitmap exceeds the plate's pixel dimensions
// in either axis is marked Fits=false and excluded from the Surface
// average and from placement consideration. LoadPart fails if no
// rotation fits.
func LoadPart(outline Outline, priority int, precisionMM, spacingMM, deltaR float64, plateWidthPx, plateHeightPx int) (*Part, error) {
	if len(outline.Contour) < 3 {
		return nil, invalidInputf("contour has fewer than 3 vertices")
	}
	if precisionMM <= 0 {
		return nil, invalidInputf("precision must be positive, got %g", precisionMM)
	}
	if spacingMM < 0 {
		return nil, invalidInputf("spacing must be non-negative, got %g", spacingMM)
	}

	k := 1
	if deltaR > 0 {
		k = int(math.Ceil(2 * math.Pi / deltaR))
		if k < 1 {
			k = 1
		}
	}

	spacingPx := int(math.Ceil(spacingMM / precisionMM))

	rast := NewRasterizer()
	footprint0 := rast.Rasterize(outline, precisionMM, 0)

	rotations := make([]Rotation, k)
	var surfaceSum float64
	var surfaceCount int

	for i := 0; i < k; i++ {
		angle := float64(i) * (2 * math.Pi / float64(k))
		if k == 1 {
			angle = 0
		}

		var fp *Bitmap
		if i == 0 {
			fp = footprint0.Clone()
		} else {
			fp = Trim(Rotate(footprint0, angle))
		}

		dilated := fp.Clone()
		if spacingPx > 0 {
			// Pad by spacingPx on every side so the dilation is not
			// clipped at the footprint's own edges.
			dilated = NewBitmap(fp.Width+2*spacingPx, fp.Height+2*spacingPx)
			dilated.CX, dilated.CY = fp.CX+spacingPx, fp.CY+spacingPx
			dilated.Write(fp, spacingPx, spacingPx)
			dilated.Dilate(spacingPx)
		}

		fits := dilated.Width <= plateWidthPx && dilated.Height <= plateHeightPx
		rotations[i] = Rotation{Angle: angle, Bitmap: dilated, Footprint: fp, Fits: fits}
		if fits {
			surfaceSum += float64(fp.Count())
			surfaceCount++
		}
	}

	if surfaceCount == 0 {
		return nil, invalidInputf("part does not fit plate at any of %d rotations", k)
	}

	return &Part{
		Outline:   outline,
		Priority:  priority,
		Rotations: rotations,
		Surface:   surfaceSum / float64(surfaceCount),
	}, nil
}
