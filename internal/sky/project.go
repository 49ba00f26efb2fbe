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

package sky

import "math"

// Default number of pixels per degree of the equirectangular texture
const DefaultScale = 40.0

// Maps equatorial coordinates onto an equirectangular full-sky texture.
// Right ascension grows along x from 0h, declination along y from the
// south celestial pole. The texture is 360*Scale by 180*Scale pixels
type Projector struct {
	Scale float64 // pixels per degree
}

func NewProjector(scale float64) *Projector {
	return &Projector{Scale: scale}
}

// Returns right ascension in degrees, at 15 degrees per hour
func RADegrees(ra Sexagesimal) float64 {
	return 360.0 / 24.0 * ra.Decimal()
}

// Returns declination in degrees
func DecDegrees(dec Sexagesimal) float64 {
	return dec.Decimal()
}

// Projects right ascension and declination to pixel coordinates.
// Right ascension is reduced modulo 24h, so x lies in [0, 360*Scale)
func (p *Projector) Project(ra, dec Sexagesimal) Point2D {
	x := wrapDegrees(RADegrees(ra)) * p.Scale
	if x >= 360*p.Scale {
		x = 0
	}
	return Point2D{
		X: x,
		Y: (DecDegrees(dec) + 90) * p.Scale,
	}
}

// Reduces an angle in degrees to [0, 360)
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Returns the declination in degrees of a given pixel row
func (p *Projector) DecFromY(y float64) float64 {
	return y/p.Scale - 90
}

// Returns the texture size in pixels
func (p *Projector) Size() (width, height int) {
	return int(360 * p.Scale), int(180 * p.Scale)
}
