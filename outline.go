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

import "seehuhn.de/go/geom/vec"

// Outline is a part's geometry: a closed contour plus zero or more
// closed holes, all in model units. The first point of a ring is not
// repeated at the end. Rings may have either winding direction — the
// rasterizer only uses them to clear, not to test orientation.
//
// Geometry loading (STL/mesh parsing, projecting a 3D model onto the
// plate face) happens upstream of this package and is out of scope;
// Outline is the already-flattened, already-polygonized result.
type Outline struct {
	Contour []vec.Vec2
	Holes   [][]vec.Vec2
}

// bounds returns the axis-aligned bounding box of the contour. The
// zero value is returned for a degenerate (< 1 point) contour.
func (o Outline) bounds() (min, max vec.Vec2) {
	if len(o.Contour) == 0 {
		return vec.Vec2{}, vec.Vec2{}
	}
	min, max = o.Contour[0], o.Contour[0]
	for _, p := range o.Contour[1:] {
		min.X = minF(min.X, p.X)
		min.Y = minF(min.Y, p.Y)
		max.X = maxF(max.X, p.X)
		max.Y = maxF(max.Y, p.Y)
	}
	return min, max
}

// ringArea returns the signed shoelace area of a ring (positive for
// counter-clockwise rings in a y-up coordinate system).
func ringArea(ring []vec.Vec2) float64 {
	if len(ring) < 3 {
		return 0
	}
	sum := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%n]
		sum += p1.X*p2.Y - p2.X*p1.Y
	}
	return sum / 2
}

// Area returns the absolute area enclosed by the contour, ignoring
// holes. Used as the Arranger's default sort weight.
func (o Outline) Area() float64 {
	a := ringArea(o.Contour)
	if a < 0 {
		return -a
	}
	return a
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
