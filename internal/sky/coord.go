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

import (
	"fmt"
	"math"
)

// A sexagesimal angle: hours (or degrees), minutes and seconds.
// The sign is carried by the first field, including a negative zero
type Sexagesimal struct {
	A float64 `json:"a"`
	M float64 `json:"m"`
	S float64 `json:"s"`
}

func (s Sexagesimal) String() string {
	return fmt.Sprintf("%g %g %g", s.A, s.M, s.S)
}

// Returns the decimal value of the angle in units of its first field.
// A negative first field makes minutes and seconds count towards the negative as well,
// so "-05 30 00" is -5.5 and "-00 30 00" is -0.5. Plain summation d + m/60 + s/3600
// would give -4.5 and +0.5 instead
func (s Sexagesimal) Decimal() float64 {
	frac := s.M/60 + s.S/3600
	if math.Signbit(s.A) {
		return s.A - frac
	}
	return s.A + frac
}

// A 2-dimensional point with floating point coordinates, in pixels
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
