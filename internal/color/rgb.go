// Copyright (C) 2020 Markus L. Noga
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

package color

import (
	"errors"
	"fmt"
	"math"
)

// Per-record failures of the color chain. A record failing with one of these
// is dropped by the compositor, never surfaced as a fatal error
var (
	ErrTemperatureOutOfRange  = errors.New("temperature outside planckian locus domain")
	ErrDegenerateChromaticity = errors.New("degenerate chromaticity")
)

// A RGB color on the percentage scale, nominally [0,100] per channel.
// Perceptually corrected colors may leave that range
type RGB struct {
	R float64 `json:"r" toml:"r"`
	G float64 `json:"g" toml:"g"`
	B float64 `json:"b" toml:"b"`
}

// Print RGB color as a human-readable string
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%.2f%%, %.2f%%, %.2f%%)", c.R, c.G, c.B)
}

// Returns the largest of the three channels
func (c RGB) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Returns true if all channels are neither NaN nor infinite
func (c RGB) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
