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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/nest"
)

// jobFile is the on-disk job description: the bed and the items to
// place. Outline geometry has no natural flag representation, so it
// travels through this JSON document while every scalar Params field
// stays a flag or config key.
type jobFile struct {
	Bed struct {
		Kind       string  `json:"kind"` // "rectangle" or "circle"
		WidthMM    float64 `json:"width_mm"`
		HeightMM   float64 `json:"height_mm"`
		DiameterMM float64 `json:"diameter_mm"`
	} `json:"bed"`
	Items []struct {
		Priority int            `json:"priority"`
		Contour  [][2]float64   `json:"contour"`
		Holes    [][][2]float64 `json:"holes"`
	} `json:"items"`
}

func readJob(path string) (nest.Bed, []nest.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nest.Bed{}, nil, fmt.Errorf("reading job file %s: %w", path, err)
	}

	var jf jobFile
	if err := json.Unmarshal(data, &jf); err != nil {
		return nest.Bed{}, nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}

	var bed nest.Bed
	switch jf.Bed.Kind {
	case "circle":
		bed = nest.Bed{Kind: nest.BedCircle, DiameterMM: jf.Bed.DiameterMM}
	default:
		bed = nest.Bed{Kind: nest.BedRectangle, WidthMM: jf.Bed.WidthMM, HeightMM: jf.Bed.HeightMM}
	}

	items := make([]nest.Item, len(jf.Items))
	for i, it := range jf.Items {
		items[i] = nest.Item{
			Outline:  nest.Outline{Contour: toVec2s(it.Contour), Holes: toHoles(it.Holes)},
			Priority: it.Priority,
		}
	}
	return bed, items, nil
}

func toVec2s(pts [][2]float64) []vec.Vec2 {
	out := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		out[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	return out
}

func toHoles(holes [][][2]float64) [][]vec.Vec2 {
	if len(holes) == 0 {
		return nil
	}
	out := make([][]vec.Vec2, len(holes))
	for i, h := range holes {
		out[i] = toVec2s(h)
	}
	return out
}

// writeResponse prints the placement results as JSON to stdout.
func writeResponse(resp nest.Response) error {
	type placedItem struct {
		Placed   bool    `json:"placed"`
		X        float64 `json:"x_mm"`
		Y        float64 `json:"y_mm"`
		Rotation float64 `json:"rotation_rad"`
		BedIndex int     `json:"bed_index"`
	}
	out := struct {
		PerItem   []placedItem `json:"per_item"`
		Score     float64      `json:"score"`
		Cancelled bool         `json:"cancelled"`
	}{
		Score:     resp.Score,
		Cancelled: resp.Cancelled,
	}
	for _, p := range resp.PerItem {
		out.PerItem = append(out.PerItem, placedItem{
			Placed:   p.Placed,
			X:        p.Translation.X,
			Y:        p.Translation.Y,
			Rotation: p.RotationRad,
			BedIndex: p.BedIndex,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
