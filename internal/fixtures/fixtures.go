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

// Package fixtures generates named polygon outlines for use in tests:
// a handful of shapes with known area and known rotational behavior,
// in model-unit coordinates.
package fixtures

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/nest"
)

// Square returns an axis-aligned square of the given side length with
// its lower-left corner at the origin.
func Square(side float64) nest.Outline {
	return Rectangle(side, side)
}

// Rectangle returns an axis-aligned rectangle with its lower-left
// corner at the origin.
func Rectangle(width, height float64) nest.Outline {
	return nest.Outline{
		Contour: []vec.Vec2{
			{X: 0, Y: 0},
			{X: width, Y: 0},
			{X: width, Y: height},
			{X: 0, Y: height},
		},
	}
}

// Triangle returns a triangle with the three given vertices.
func Triangle(x1, y1, x2, y2, x3, y3 float64) nest.Outline {
	return nest.Outline{
		Contour: []vec.Vec2{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}},
	}
}

// RegularPolygon returns a regular n-gon inscribed in a circle of the
// given radius, centered at the origin, with n >= 3.
func RegularPolygon(n int, radius float64) nest.Outline {
	pts := make([]vec.Vec2, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return nest.Outline{Contour: pts}
}

// Disc approximates a circle of the given radius, centered at the
// origin, with an n-sided regular polygon. n=64 is a reasonable
// default for test fixtures.
func Disc(radius float64, n int) nest.Outline {
	return RegularPolygon(n, radius)
}

// Annulus approximates an annulus (a disc with a concentric circular
// hole) centered at the origin, using n-sided regular polygons for
// both the outer contour and the hole.
func Annulus(outerRadius, innerRadius float64, n int) nest.Outline {
	o := RegularPolygon(n, outerRadius)
	hole := RegularPolygon(n, innerRadius)
	return nest.Outline{Contour: o.Contour, Holes: [][]vec.Vec2{hole.Contour}}
}

// FivePointStar returns a five-pointed star centered at (cx,cy) with
// the given outer radius, alternating outer and inner (radius/2.5)
// vertices — the straight-edge analogue of the teacher's Bezier test
// shape of the same name.
func FivePointStar(cx, cy, outerRadius float64) nest.Outline {
	const points = 5
	innerRadius := outerRadius / 2.5
	pts := make([]vec.Vec2, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		theta := math.Pi/2 + 2*math.Pi*float64(i)/float64(points*2)
		pts = append(pts, vec.Vec2{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)})
	}
	return nest.Outline{Contour: pts}
}
