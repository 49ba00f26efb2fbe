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
	"fmt"
	"math"
)

// Default offset tying the apparent magnitude scale to the brightness coefficient
const DefaultMagnitudeOffset = 1.45

// Maps clamped linear colors to displayable ones, scaling by apparent
// magnitude and applying a gamma curve
type Corrector struct {
	Gamma      float64 `json:"gamma"`      // gamma exponent, output is ch^(1/Gamma)
	Brightness float64 `json:"brightness"` // base of the magnitude-driven brightness coefficient
	Offset     float64 `json:"offset"`     // magnitude offset, see DefaultMagnitudeOffset
}

func NewCorrector(gamma, brightness float64) *Corrector {
	return &Corrector{Gamma: gamma, Brightness: brightness, Offset: DefaultMagnitudeOffset}
}

// Rescales c so its brightest channel equals Brightness^-(m+Offset) times 100, then
// gamma-corrects each channel. Results are not clamped. Fails with ErrDegenerateChromaticity
// for a black input color or a non-finite result
func (cr *Corrector) Correct(c RGB, magnitude float64) (RGB, error) {
	max := c.Max()
	if !(max > 0) {
		return RGB{}, fmt.Errorf("%w: black color %v", ErrDegenerateChromaticity, c)
	}
	k := math.Pow(cr.Brightness, -(magnitude+cr.Offset)) / max * 100

	out := RGB{
		R: cr.gamma(c.R * k),
		G: cr.gamma(c.G * k),
		B: cr.gamma(c.B * k),
	}
	if !out.IsFinite() {
		return RGB{}, fmt.Errorf("%w: non-finite corrected color %v for magnitude %g", ErrDegenerateChromaticity, out, magnitude)
	}
	return out, nil
}

func (cr *Corrector) gamma(ch float64) float64 {
	if cr.Gamma == 1 {
		return ch
	}
	return 100 * math.Pow(ch/100, 1/cr.Gamma)
}
