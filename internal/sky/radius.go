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

// Defaults for the radius model
const (
	DefaultBaseRadius         = 2.0
	DefaultGrowth             = 1.1
	DefaultReferenceMagnitude = 1.45
	DefaultPoleAspectLimit    = 64.0
)

// Turns apparent magnitude into ellipse radii. Brighter stars grow
// geometrically, and ellipses widen east-west by 1/cos(dec) to undo the
// stretching of the equirectangular projection.
// Near the poles the horizontal radius is capped at PoleAspectLimit times
// the vertical radius
type RadiusModel struct {
	BaseRadius         float64 // vertical radius in pixels at the reference magnitude
	Growth             float64 // radius factor per magnitude, >1
	ReferenceMagnitude float64
	PoleAspectLimit    float64 // max ratio of horizontal to vertical radius, >=1
}

func NewRadiusModel() *RadiusModel {
	return &RadiusModel{
		BaseRadius:         DefaultBaseRadius,
		Growth:             DefaultGrowth,
		ReferenceMagnitude: DefaultReferenceMagnitude,
		PoleAspectLimit:    DefaultPoleAspectLimit,
	}
}

// Returns the vertical radius for the given magnitude
func (m *RadiusModel) Vertical(magnitude float64) float64 {
	return m.BaseRadius * math.Pow(m.Growth, m.ReferenceMagnitude-magnitude)
}

// Returns the vertical and the horizontal radius for the given magnitude and declination in degrees
func (m *RadiusModel) Radii(magnitude, decDeg float64) (rv, rh float64) {
	rv = m.Vertical(magnitude)
	limit := rv * m.PoleAspectLimit
	cos := math.Cos(decDeg * math.Pi / 180)
	if cos <= 0 {
		return rv, limit
	}
	rh = rv / cos
	if rh > limit || math.IsNaN(rh) {
		rh = limit
	}
	return rv, rh
}
