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

package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/valyala/fastrand"

	"github.com/mlnoga/skytexture/internal/catalog"
)

// Returns n approximately normally distributed values, as sums of twelve uniform variates
func normalSample(rng *fastrand.RNG, n int, mean, sd float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		sum := 0.0
		for j := 0; j < 12; j++ {
			sum += float64(rng.Uint32n(1<<20)) / (1 << 20)
		}
		data[i] = mean + sd*(sum-6)
	}
	return data
}

func TestHistogram(t *testing.T) {
	bins := make([]int, 5)
	Histogram([]float64{0, 1, 1, 2, 3, 4, 4, 4, -1, 5, math.NaN()}, 0, 4, bins)
	want := []int{1, 2, 1, 1, 3}
	for i := range want {
		if bins[i] != want[i] {
			t.Errorf("bins=%v; want %v", bins, want)
			break
		}
	}
	x, y := Peak(bins, 0, 4)
	if x != 4.5 || y != 3 {
		t.Errorf("Peak=(%v,%v); want (4.5,3)", x, y)
	}
}

func TestFitGaussian(t *testing.T) {
	rng := fastrand.RNG{}
	data := normalSample(&rng, 20000, 5, 1)
	bins := make([]int, 64)
	Histogram(data, 0, 10, bins)
	mode, sd, err := FitGaussian(bins, 0, 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mode-5) > 0.2 {
		t.Errorf("mode=%v; want about 5", mode)
	}
	if math.Abs(sd-1) > 0.2 {
		t.Errorf("stdDev=%v; want about 1", sd)
	}
}

func TestFitGaussianEmpty(t *testing.T) {
	_, _, err := FitGaussian(make([]int, 8), 0, 1, 1)
	if !errors.Is(err, ErrEmptyHistogram) {
		t.Errorf("err=%v; want ErrEmptyHistogram", err)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{4, 1, math.NaN(), 3, 2, 5, math.Inf(1)}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count != 5 || s.Min != 1 || s.Max != 5 || s.Mean != 3 || s.Median != 3 {
		t.Errorf("summary=%v; want n=5 min=1 max=5 mean=3 median=3", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("stdDev=%v; want %v", s.StdDev, math.Sqrt(2.5))
	}
	if s.Q1 != 2 || s.Q3 != 4 {
		t.Errorf("quartiles=%v,%v; want 2,4", s.Q1, s.Q3)
	}
	if len(s.Bins) != 8 {
		t.Errorf("len(bins)=%d; want 8", len(s.Bins))
	}

	single, err := Summarize([]float64{7}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if single.Mean != 7 || single.Median != 7 || single.Mode != 7 || single.StdDev != 0 {
		t.Errorf("single=%v; want all 7 with zero deviation", single)
	}

	if _, err := Summarize([]float64{math.NaN()}, 8); !errors.Is(err, ErrNoData) {
		t.Errorf("err=%v; want ErrNoData", err)
	}
}

func TestOfCatalog(t *testing.T) {
	recs := []catalog.Record{
		{Magnitude: 1, ColorIndex: 0.65},
		{Magnitude: 2, ColorIndex: 0},
		{Magnitude: 3, ColorIndex: 5}, // too cold for the locus fits
	}
	c, err := OfCatalog(recs, 16)
	if err != nil {
		t.Fatal(err)
	}
	if c.Records != 3 || c.Magnitude.Count != 3 || c.ColorIndex.Count != 3 || c.Temperature.Count != 2 {
		t.Errorf("catalog=%+v; want 3 records and 2 temperatures", c)
	}
	if c.Magnitude.Mean != 2 {
		t.Errorf("mean magnitude=%v; want 2", c.Magnitude.Mean)
	}
	if _, err := OfCatalog(nil, 16); !errors.Is(err, ErrNoData) {
		t.Errorf("err=%v; want ErrNoData", err)
	}
}
