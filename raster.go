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
	"math"
	"sort"

	"seehuhn.de/go/geom/vec"
)

// Rasterizer converts a polygon-with-holes Outline into a binary
// occupancy Bitmap at a fixed precision. Create one instance and
// reuse it across parts and rotations; its scratch buffer grows as
// needed but never shrinks, the way a reused buffer amortizes
// allocation across many rasterization calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// xs holds x-intersections for the scanline currently being
	// processed. Reused across calls.
	xs []float64
}

// NewRasterizer returns a ready-to-use Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize fills a Bitmap with the occupancy of outline at the given
// precision (model units per pixel), surrounded by a border of
// margin+1 empty pixels on every side, then dilates the result by
// margin pixels. The gravity center is the outline's axis-aligned
// bounding-box center, in pixel coordinates.
//
// A contour with fewer than 3 vertices produces an all-zero Bitmap of
// minimal size.
func (r *Rasterizer) Rasterize(outline Outline, precision float64, margin int) *Bitmap {
	border := margin + 1

	if len(outline.Contour) < 3 {
		size := 2 * border
		if size < 1 {
			size = 1
		}
		return NewBitmap(size, size)
	}

	minP, maxP := outline.bounds()

	pixW := int(math.Ceil((maxP.X-minP.X)/precision)) + 2*border
	pixH := int(math.Ceil((maxP.Y-minP.Y)/precision)) + 2*border

	bmp := NewBitmap(pixW, pixH)
	bmp.CX = int(math.Round(((minP.X+maxP.X)/2-minP.X)/precision)) + border
	bmp.CY = int(math.Round(((minP.Y+maxP.Y)/2-minP.Y)/precision)) + border

	r.fillRing(bmp, outline.Contour, minP, precision, border, 1)
	for _, hole := range outline.Holes {
		if len(hole) >= 3 {
			r.fillRing(bmp, hole, minP, precision, border, 0)
		}
	}

	if margin > 0 {
		bmp.Dilate(margin)
	}
	return bmp
}

// fillRing performs an even-odd scanline fill of one ring (contour or
// hole), writing value into every pixel the ring encloses. Scanlines
// run at pixel-row granularity in model space; a vertex pair
// contributes an x-intersection to scanline py when
// p1.y <= scanY < p2.y or p2.y <= scanY < p1.y (half-open, so shared
// vertices are never double-counted). The left intersection is
// floored to a pixel column; each span runs up to and including the
// pixel that contains the right intersection, so a right intersection
// lying exactly on a pixel boundary does not claim the pixel that
// starts there.
func (r *Rasterizer) fillRing(bmp *Bitmap, ring []vec.Vec2, minP vec.Vec2, precision float64, border int, value byte) {
	n := len(ring)
	base := bmp.Height - 2*border
	for py := 0; py < base; py++ {
		scanY := minP.Y + float64(py)*precision

		r.xs = r.xs[:0]
		for i := 0; i < n; i++ {
			p1 := ring[i]
			p2 := ring[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				r.xs = append(r.xs, x)
			}
		}
		if len(r.xs) < 2 {
			continue
		}
		sort.Float64s(r.xs)

		row := py + border
		for i := 0; i+1 < len(r.xs); i += 2 {
			xStart := int(math.Floor((r.xs[i]-minP.X)/precision)) + border
			xEnd := int(math.Ceil((r.xs[i+1]-minP.X)/precision)) - 1 + border
			if xStart < 0 {
				xStart = 0
			}
			if xEnd > bmp.Width-1 {
				xEnd = bmp.Width - 1
			}
			for px := xStart; px <= xEnd; px++ {
				bmp.Set(px, row, value)
			}
		}
	}
}
