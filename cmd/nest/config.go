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
	"fmt"

	"github.com/BurntSushi/toml"
)

// config is the optional --config file format: every field mirrors a
// Params flag, letting a caller check a parameter set into version
// control instead of repeating a long flag list.
type config struct {
	PrecisionMM      float64
	SpacingMM        float64
	DeltaMM          float64
	DeltaRRad        float64
	AllowRotations   bool
	Multi            bool
	RandomIterations int
	ThreadCount      int
	UnplacedPenalty  float64
}

func readConfig(path string) (config, error) {
	var c config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return c, nil
}
