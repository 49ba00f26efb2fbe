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

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// Chromaticities with |y| below this carry no usable luminance ratio
const minChromaticityY = 1e-9

// Linear transform from CIE XYZ to linear sRGB (D65)
var xyzToRGB = mat.NewDense(3, 3, []float64{
	3.240970, -1.537383, -0.498611,
	-0.969244, 1.875968, 0.041555,
	0.055630, -0.203977, 1.056972,
})

// Converts a chromaticity at unit luminance into linear RGB percentages.
// Each channel is clamped to [0,1] independently and then scaled to [0,100],
// so out-of-gamut colors keep their interior channels unchanged.
// Fails with ErrDegenerateChromaticity if y is (close to) zero or not finite
func ChromaticityToRGB(c Chromaticity) (RGB, error) {
	if !isFinite(c.X) || !isFinite(c.Y) || math.Abs(c.Y) < minChromaticityY {
		return RGB{}, fmt.Errorf("%w: %v", ErrDegenerateChromaticity, c)
	}
	x, y, z := colorful.XyyToXyz(c.X, c.Y, 1)

	var lin mat.VecDense
	lin.MulVec(xyzToRGB, mat.NewVecDense(3, []float64{x, y, z}))

	return RGB{
		R: clamp01(lin.AtVec(0)) * 100,
		G: clamp01(lin.AtVec(1)) * 100,
		B: clamp01(lin.AtVec(2)) * 100,
	}, nil
}
