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

import "fmt"

// Domain of the cubic spline approximation of the Planckian locus, in Kelvin.
// Valid temperatures satisfy MinLocusTemperature <= t < MaxLocusTemperature
const (
	MinLocusTemperature = 1667.0
	MaxLocusTemperature = 25000.0
)

// Breakpoints of the piecewise fits. The x and y fits switch segments
// independently of each other
const (
	locusXBreak  = 4000.0
	locusYBreak1 = 2222.0
	locusYBreak2 = 4000.0
)

// A CIE 1931 chromaticity coordinate
type Chromaticity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Chromaticity) String() string {
	return fmt.Sprintf("xy(%.4f, %.4f)", c.X, c.Y)
}

// Returns the chromaticity of a blackbody radiator at temperature t in Kelvin,
// via the cubic approximation of the Planckian locus by Kim et al.
// Fails with ErrTemperatureOutOfRange outside [1667K, 25000K) and for NaN
func PlanckianLocus(t float64) (Chromaticity, error) {
	if !(t >= MinLocusTemperature && t < MaxLocusTemperature) {
		return Chromaticity{}, fmt.Errorf("%w: %.1fK", ErrTemperatureOutOfRange, t)
	}

	t1 := 1e3 / t
	t2 := t1 * t1
	t3 := t2 * t1
	var x float64
	if t < locusXBreak {
		x = -0.2661239*t3 - 0.2343589*t2 + 0.8776956*t1 + 0.179910
	} else {
		x = -3.0258469*t3 + 2.1070379*t2 + 0.2226347*t1 + 0.240390
	}

	x2 := x * x
	x3 := x2 * x
	var y float64
	switch {
	case t < locusYBreak1:
		y = -1.1063814*x3 - 1.34811020*x2 + 2.18555832*x - 0.20219683
	case t < locusYBreak2:
		y = -0.9549476*x3 - 1.37418593*x2 + 2.09137015*x - 0.16748867
	default:
		y = 3.0817580*x3 - 5.87338670*x2 + 3.75112997*x - 0.37001483
	}
	return Chromaticity{x, y}, nil
}
