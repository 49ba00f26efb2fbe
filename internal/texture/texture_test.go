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
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valyala/fastrand"
	"golang.org/x/image/tiff"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/color"
	"github.com/mlnoga/skytexture/internal/ops"
	"github.com/mlnoga/skytexture/internal/sky"
)

var white = color.RGB{R: 100, G: 100, B: 100}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		in      color.RGB
		r, g, b uint8
	}{
		{color.RGB{R: 0, G: 50, B: 100}, 0, 128, 255},
		{color.RGB{R: -5, G: 150, B: 1e9}, 0, 255, 255},
		{color.RGB{R: math.NaN(), G: math.Inf(1), B: math.Inf(-1)}, 0, 255, 0},
	}
	for _, test := range tests {
		c := ToRGBA(test.in)
		if c.R != test.r || c.G != test.g || c.B != test.b || c.A != 255 {
			t.Errorf("ToRGBA(%v)=%v; want (%d,%d,%d,255)", test.in, c, test.r, test.g, test.b)
		}
	}
}

func TestNewCanvasBackground(t *testing.T) {
	c := NewCanvas(8, 4, color.RGB{R: 100, G: 0, B: 20})
	if b := c.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("bounds=%v; want 8x4", b)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			p := c.Image().RGBAAt(x, y)
			if p.R != 255 || p.G != 0 || p.B != 51 || p.A != 255 {
				t.Errorf("pixel (%d,%d)=%v; want (255,0,51,255)", x, y, p)
			}
		}
	}
}

func TestFillEllipse(t *testing.T) {
	c := NewCanvas(100, 50, color.RGB{})
	c.FillEllipse(50, 25, 10, 5, white)
	img := c.Image()

	if p := img.RGBAAt(50, 25); p.R < 250 || p.G < 250 || p.B < 250 {
		t.Errorf("center=%v; want white", p)
	}
	for _, pt := range [][2]int{{5, 5}, {50, 15}, {50, 35}, {35, 25}, {65, 25}} {
		if p := img.RGBAAt(pt[0], pt[1]); p.R != 0 || p.G != 0 || p.B != 0 {
			t.Errorf("pixel %v=%v; want black", pt, p)
		}
	}
	// horizontal extent exceeds vertical extent
	if p := img.RGBAAt(57, 25); p.R == 0 {
		t.Errorf("pixel (57,25)=%v; want lit", p)
	}
	if p := img.RGBAAt(50, 29); p.R == 0 {
		t.Errorf("pixel (50,29)=%v; want lit", p)
	}
}

func TestFillEllipseWrapsAroundSeam(t *testing.T) {
	c := NewCanvas(100, 20, color.RGB{})
	c.FillEllipse(1, 10, 5, 5, white)
	img := c.Image()
	if p := img.RGBAAt(97, 10); p.R == 0 {
		t.Errorf("wrapped pixel (97,10)=%v; want lit", p)
	}
	if p := img.RGBAAt(2, 10); p.R < 250 {
		t.Errorf("pixel (2,10)=%v; want white", p)
	}
	if p := img.RGBAAt(50, 10); p.R != 0 {
		t.Errorf("pixel (50,10)=%v; want black", p)
	}
}

func TestFillEllipseDegenerate(t *testing.T) {
	c := NewCanvas(20, 20, color.RGB{})
	c.FillEllipse(10, 10, 0, 5, white)
	c.FillEllipse(10, 10, math.NaN(), 5, white)
	c.FillEllipse(10, 10, 5, math.Inf(1), white)
	c.FillEllipse(-500, 10, 5, 5, white)
	for i, v := range c.Image().Pix {
		if i%4 != 3 && v != 0 {
			t.Fatalf("Pix[%d]=%d; want untouched canvas", i, v)
		}
	}
}

func newTestCompositor(t *testing.T, scale float64, maxThreads int) *Compositor {
	t.Helper()
	m, err := color.NewModel(color.ModelBlackbody, color.NewCorrector(3.9, 2.5))
	if err != nil {
		t.Fatal(err)
	}
	oc := ops.NewContext(zerolog.Nop(), maxThreads)
	return NewCompositor(oc, sky.NewProjector(scale), sky.NewRadiusModel(), m, color.RGB{})
}

func rec(id string, raH, decD, mag, bv float64) catalog.Record {
	return catalog.Record{
		ID:         id,
		RA:         sky.Sexagesimal{A: raH},
		Dec:        sky.Sexagesimal{A: decD},
		Magnitude:  mag,
		ColorIndex: bv,
	}
}

// Fails on negative color indices with an error of its own
type failingModel struct{ color.Model }

var errNoColor = errors.New("no color")

func (m failingModel) Color(bv, magnitude float64) (color.RGB, error) {
	if bv < 0 {
		return color.RGB{}, errNoColor
	}
	return m.Model.Color(bv, magnitude)
}

func TestComposeCountsOtherErrors(t *testing.T) {
	c := newTestCompositor(t, 1, 1)
	c.Colors = failingModel{c.Colors}
	recs := []catalog.Record{
		rec("1", 12, 0, 0, 0.65),
		rec("2", 3, 20, 1, -0.2),
		rec("3", 1, 10, 3, 5),
	}
	scene, rep, err := c.Compose(context.Background(), recs)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Other != 1 || rep.TemperatureOutOfRange != 1 || rep.Dropped() != 2 {
		t.Errorf("report=%+v; want 1 other, 1 out of range, 2 dropped", rep)
	}
	if len(scene.Stars) != 1 || rep.Stars != 1 {
		t.Errorf("len(stars)=%d stars=%d; want 1", len(scene.Stars), rep.Stars)
	}
}

func TestComposeDropsAndOrder(t *testing.T) {
	c := newTestCompositor(t, 4, 2)
	recs := []catalog.Record{
		rec("1", 12, 0, 0, 0.65),
		rec("2", 1, 10, 3, 5), // about 1600 K, below the locus fits
		rec("3", 6, -45, 2, 0),
		rec("4", 0, 89, 5, math.NaN()),
	}
	scene, rep, err := c.Compose(context.Background(), recs)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Records != 4 || rep.Stars != 2 || rep.TemperatureOutOfRange != 2 || rep.Dropped() != 2 {
		t.Errorf("report=%+v; want 4 records, 2 stars, 2 out of range", rep)
	}
	if scene.Width != 1440 || scene.Height != 720 {
		t.Errorf("scene size=%dx%d; want 1440x720", scene.Width, scene.Height)
	}
	if len(scene.Stars) != 2 {
		t.Fatalf("len(stars)=%d; want 2", len(scene.Stars))
	}
	if s := scene.Stars[0]; s.X != 720 || s.Y != 360 {
		t.Errorf("star 0 at (%v,%v); want (720,360)", s.X, s.Y)
	}
	if s := scene.Stars[1]; s.X != 360 || s.Y != 180 {
		t.Errorf("star 1 at (%v,%v); want (360,180)", s.X, s.Y)
	}
	if s := scene.Stars[1]; !(s.RH > s.RV) {
		t.Errorf("star 1 rh=%v rv=%v; want rh>rv off the equator", s.RH, s.RV)
	}
}

func randomCatalog(n int) []catalog.Record {
	recs := make([]catalog.Record, n)
	for i := range recs {
		recs[i] = catalog.Record{
			RA: sky.Sexagesimal{A: float64(fastrand.Uint32n(24)), M: float64(fastrand.Uint32n(60)),
				S: float64(fastrand.Uint32n(6000)) / 100},
			Dec:        sky.Sexagesimal{A: float64(fastrand.Uint32n(179)) - 89, M: float64(fastrand.Uint32n(60))},
			Magnitude:  float64(fastrand.Uint32n(1000))/100 - 1.5,
			ColorIndex: float64(fastrand.Uint32n(600))/100 - 0.5,
			Line:       i + 1,
		}
	}
	return recs
}

func TestComposeIsDeterministic(t *testing.T) {
	recs := randomCatalog(5000)
	c := newTestCompositor(t, 2, 4)
	ctx := context.Background()

	s1, r1, err := c.Compose(ctx, recs)
	if err != nil {
		t.Fatal(err)
	}
	s2, r2, err := c.Compose(ctx, recs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("reports differ: %+v vs %+v", r1, r2)
	}
	if !reflect.DeepEqual(s1.Stars, s2.Stars) {
		t.Errorf("scenes differ between runs")
	}
	if r1.Stars+r1.Dropped() != len(recs) {
		t.Errorf("stars %d + dropped %d != records %d", r1.Stars, r1.Dropped(), len(recs))
	}

	single := newTestCompositor(t, 2, 1)
	s3, _, err := single.Compose(ctx, recs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s1.Stars, s3.Stars) {
		t.Errorf("scene depends on number of threads")
	}

	img1, err := c.Rasterize(ctx, s1)
	if err != nil {
		t.Fatal(err)
	}
	img2, err := c.Rasterize(ctx, s2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img1.Pix, img2.Pix) {
		t.Errorf("rasters differ between runs")
	}
}

func TestComposeCancelled(t *testing.T) {
	c := newTestCompositor(t, 1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.Compose(ctx, randomCatalog(10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err=%v; want context.Canceled", err)
	}
}

func TestRasterizeMemoryGuard(t *testing.T) {
	c := newTestCompositor(t, 1, 1)
	c.Ctx = &ops.Context{Log: zerolog.Nop(), MemoryMB: 10, CanvasMemoryMB: 7, MaxThreads: 1}
	_, err := c.Rasterize(context.Background(), &Scene{Width: 4000, Height: 2000})
	if err == nil {
		t.Errorf("Rasterize of 30 MiB canvas with 7 MiB budget succeeded; want error")
	}
}

func TestRender(t *testing.T) {
	c := newTestCompositor(t, 1, 2)
	src := catalog.Static{rec("sun", 12, 0, -1, 0.65), rec("cold", 3, 3, 1, 5)}
	img, scene, rep, err := c.Render(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 360 || b.Dy() != 180 {
		t.Errorf("bounds=%v; want 360x180", b)
	}
	if len(scene.Stars) != 1 || rep.Stars != 1 || rep.TemperatureOutOfRange != 1 {
		t.Errorf("report=%+v; want one star and one drop", rep)
	}
	if p := img.RGBAAt(180, 90); p.R == 0 {
		t.Errorf("pixel at sun=%v; want lit", p)
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name, format string
		ok           bool
	}{
		{"a/texture3.9_2.5.png", FormatPNG, true},
		{"x.JPG", FormatJPG, true},
		{"x.jpeg", FormatJPG, true},
		{"x.tiff", FormatTIFF, true},
		{"x.svg", FormatSVG, true},
		{"x.bmp", "", false},
		{"x", "", false},
	}
	for _, test := range tests {
		f, err := FormatFromName(test.name)
		if f != test.format || (err == nil) != test.ok {
			t.Errorf("FormatFromName(%q)=%q,%v; want %q", test.name, f, err, test.format)
		}
	}
}

func TestWriteFile(t *testing.T) {
	c := newTestCompositor(t, 1, 1)
	scene, _, err := c.Compose(context.Background(), []catalog.Record{rec("sun", 12, 0, -1, 0.65)})
	if err != nil {
		t.Fatal(err)
	}
	img := scene.Rasterize().Image()
	dir := filepath.Join(t.TempDir(), "out")

	pngName := filepath.Join(dir, "t.png")
	if err := WriteFile(pngName, img, scene, 95); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(pngName)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := decoded.At(180, 90).RGBA(); r>>8 != uint32(img.RGBAAt(180, 90).R) {
		t.Errorf("decoded png pixel differs")
	}

	tifName := filepath.Join(dir, "t.tif")
	if err := WriteFile(tifName, img, scene, 95); err != nil {
		t.Fatal(err)
	}
	tf, err := os.Open(tifName)
	if err != nil {
		t.Fatal(err)
	}
	defer tf.Close()
	if timg, err := tiff.Decode(tf); err != nil {
		t.Errorf("tiff.Decode: %v", err)
	} else if b := timg.Bounds(); b.Dx() != 360 || b.Dy() != 180 {
		t.Errorf("tiff bounds=%v; want 360x180", b)
	}

	if err := WriteFile(filepath.Join(dir, "t.jpg"), img, scene, 80); err != nil {
		t.Error(err)
	}

	svgName := filepath.Join(dir, "t.svg")
	if err := WriteFile(svgName, nil, scene, 0); err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(svgName)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(svg), "<ellipse "); n != 1 {
		t.Errorf("svg has %d ellipses; want 1", n)
	}
	if !strings.Contains(string(svg), `width="360"`) {
		t.Errorf("svg lacks canvas width")
	}

	if err := WriteFile(filepath.Join(dir, "t.bmp"), img, scene, 0); err == nil {
		t.Errorf("WriteFile(.bmp) succeeded; want error")
	}
}

func TestSVGColor(t *testing.T) {
	got := svgColor(color.RGB{R: 120, G: 50.5, B: math.NaN()})
	if want := "rgb(100%,50.5%,0%)"; got != want {
		t.Errorf("svgColor=%q; want %q", got, want)
	}
}
