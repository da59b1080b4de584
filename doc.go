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

// Package nest arranges 2D part outlines onto a build plate.
//
// Parts are rasterized to fixed-precision occupancy bitmaps, rotated
// into a small fan of candidate orientations, and placed one at a time
// by a deterministic spiral search against a cumulative plate bitmap.
// The package does not implement true no-fit-polygon packing: it is a
// greedy, discrete-grid heuristic tuned for speed and determinism
// rather than a global optimum.
package nest
