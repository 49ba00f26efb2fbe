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
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/mlnoga/skytexture/internal/color"
)

// Writes the scene as an SVG document with one filled ellipse per star, on a background rectangle
func (s *Scene) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"utf-8\" ?>\n")
	fmt.Fprintf(bw, "<svg baseProfile=\"full\" height=\"%d\" version=\"1.1\" width=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		s.Height, s.Width)
	fmt.Fprintf(bw, "<rect fill=\"%s\" height=\"%d\" width=\"%d\" x=\"0\" y=\"0\" />\n",
		svgColor(s.Background), s.Height, s.Width)
	for _, st := range s.Stars {
		fmt.Fprintf(bw, "<ellipse cx=\"%g\" cy=\"%g\" fill=\"%s\" rx=\"%g\" ry=\"%g\" />\n",
			st.X, st.Y, svgColor(st.Color), st.RH, st.RV)
	}
	fmt.Fprintf(bw, "</svg>\n")
	return bw.Flush()
}

// Formats a percentage color as SVG rgb() with percent channels clamped to [0,100]
func svgColor(c color.RGB) string {
	return fmt.Sprintf("rgb(%g%%,%g%%,%g%%)", percent(c.R), percent(c.G), percent(c.B))
}

func percent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
