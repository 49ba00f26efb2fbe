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
	"image"
	imgcolor "image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/mlnoga/skytexture/internal/color"
)

// Control point distance for approximating a quarter ellipse with a cubic Bézier curve
const kappa = 0.5522847498

// An 8-bit RGBA raster to draw star ellipses onto. Ellipses crossing the left or right
// border are wrapped around, as the texture covers the full circle of right ascension.
// A Canvas is not safe for concurrent use
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// Creates a canvas of the given size, filled with the background color
func NewCanvas(width, height int, bg color.RGB) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(ToRGBA(bg)), image.Point{}, draw.Src)
	return &Canvas{img: img, z: vector.NewRasterizer(1, 1)}
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Returns the bytes needed for a canvas of the given size
func CanvasBytes(width, height int) int64 {
	return int64(width) * int64(height) * 4
}

// Draws an anti-aliased filled ellipse centered at (cx, cy) with horizontal radius rh
// and vertical radius rv, blending over the existing pixels
func (c *Canvas) FillEllipse(cx, cy, rh, rv float64, col color.RGB) {
	if !(rh > 0) || !(rv > 0) || math.IsInf(rh, 0) || math.IsInf(rv, 0) {
		return
	}
	src := image.NewUniform(ToRGBA(col))
	width := float64(c.img.Rect.Dx())
	for _, shift := range []float64{0, -width, width} {
		c.fillEllipseAt(cx+shift, cy, rh, rv, src)
	}
}

func (c *Canvas) fillEllipseAt(cx, cy, rh, rv float64, src image.Image) {
	bounds := c.img.Bounds()
	r := image.Rect(
		int(math.Floor(cx-rh)), int(math.Floor(cy-rv)),
		int(math.Ceil(cx+rh)), int(math.Ceil(cy+rv)),
	).Intersect(bounds)
	if r.Empty() {
		return
	}

	// path coordinates are relative to the clipped bounding box;
	// the rasterizer clips the parts outside
	x, y := float32(cx-float64(r.Min.X)), float32(cy-float64(r.Min.Y))
	a, b := float32(rh), float32(rv)
	ka, kb := float32(kappa*rh), float32(kappa*rv)

	z := c.z
	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(x+a, y)
	z.CubeTo(x+a, y+kb, x+ka, y+b, x, y+b)
	z.CubeTo(x-ka, y+b, x-a, y+kb, x-a, y)
	z.CubeTo(x-a, y-kb, x-ka, y-b, x, y-b)
	z.CubeTo(x+ka, y-b, x+a, y-kb, x+a, y)
	z.ClosePath()
	z.Draw(c.img, r, src, image.Point{})
}

// Converts a percentage color to 8-bit, clamping channels to [0,100]
// and replacing NaNs with zeros
func ToRGBA(c color.RGB) imgcolor.RGBA {
	cf := colorful.Color{R: zeroNaN(c.R) / 100, G: zeroNaN(c.G) / 100, B: zeroNaN(c.B) / 100}.Clamped()
	r, g, b := cf.RGB255()
	return imgcolor.RGBA{R: r, G: g, B: b, A: 255}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
