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

package texture

import (
	"fmt"

	"github.com/mlnoga/skytexture/internal/color"
)

// A star ready to be drawn: canvas position, corrected color in percent, and ellipse radii in pixels
type Star struct {
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Color color.RGB `json:"color"`
	RV    float64   `json:"rv"`
	RH    float64   `json:"rh"`
}

func (s Star) String() string {
	return fmt.Sprintf("(%.2f,%.2f) rv=%.3f rh=%.3f %v", s.X, s.Y, s.RV, s.RH, s.Color)
}

// An ordered list of stars on a background of the given size. Drawing order is list order
type Scene struct {
	Width      int
	Height     int
	Background color.RGB
	Stars      []Star
}

// Draws all stars of the scene onto the canvas, in order
func (s *Scene) Draw(c *Canvas) {
	for _, st := range s.Stars {
		c.FillEllipse(st.X, st.Y, st.RH, st.RV, st.Color)
	}
}

// Rasterizes the scene onto a new canvas
func (s *Scene) Rasterize() *Canvas {
	c := NewCanvas(s.Width, s.Height, s.Background)
	s.Draw(c)
	return c
}
