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

// Rotate returns a new Bitmap containing src rotated by theta radians,
// counter-clockwise in image coordinates, preserving the gravity
// center as the same material point.
//
// A zero angle returns a deep copy of src. Otherwise the destination
// bounding box is computed from the four corners of src's
// (0,0)-(width,height) rectangle rotated about the origin; every
// destination pixel is then reverse-mapped through the inverse
// rotation, pivoting on src's gravity center, and sampled from src
// with nearest-neighbor rounding. Pixels that land outside src read as
// empty.
func Rotate(src *Bitmap, theta float64) *Bitmap {
	if theta == 0 {
		return src.Clone()
	}

	r := -theta
	cos, sin := math.Cos(r), math.Sin(r)

	corners := [4][2]float64{
		{0, 0},
		{float64(src.Width), 0},
		{0, float64(src.Height)},
		{float64(src.Width), float64(src.Height)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		rx := cos*c[0] - sin*c[1]
		ry := sin*c[0] + cos*c[1]
		minX = math.Min(minX, rx)
		minY = math.Min(minY, ry)
		maxX = math.Max(maxX, rx)
		maxY = math.Max(maxY, ry)
	}

	// The tolerance keeps floating-point noise (cos(pi/2) is not exactly
	// 0) from adding a spurious row or column.
	const eps = 1e-9
	dstWidth := int(math.Ceil(maxX - minX - eps))
	dstHeight := int(math.Ceil(maxY - minY - eps))
	if dstWidth < 1 {
		dstWidth = 1
	}
	if dstHeight < 1 {
		dstHeight = 1
	}

	dst := NewBitmap(dstWidth, dstHeight)

	newCX := float64(dstWidth) / 2
	newCY := float64(dstHeight) / 2
	oldCX := float64(src.CX)
	oldCY := float64(src.CY)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			dx := float64(x) - newCX
			dy := float64(y) - newCY
			srcX := int(math.Round(cos*dx - sin*dy + oldCX))
			srcY := int(math.Round(sin*dx + cos*dy + oldCY))
			if src.Get(srcX, srcY) {
				dst.Set(x, y, 1)
			}
		}
	}

	return dst
}

// Trim returns the smallest sub-bitmap of b containing every occupied
// pixel, adjusted so that the gravity center remains at the same
// material point. An all-empty Bitmap is returned as an unchanged
// copy, since cropping it would be ambiguous.
func Trim(b *Bitmap) *Bitmap {
	minX, minY := b.Width, b.Height
	maxX, maxY := -1, -1
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Get(x, y) {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		return b.Clone()
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	out := NewBitmap(w, h)
	out.CX = b.CX - minX
	out.CY = b.CY - minY
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.Get(x+minX, y+minY) {
				out.Set(x, y, 1)
			}
		}
	}
	return out
}
