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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/color"
	"github.com/mlnoga/skytexture/internal/qsort"
)

var ErrNoData = errors.New("no data")

// Default number of histogram bins
const DefaultBins = 64

// Descriptive statistics of a sample, plus a normal distribution fitted to its histogram
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Mode   float64 `json:"mode"`  // location of the fitted normal distribution
	Sigma  float64 `json:"sigma"` // width of the fitted normal distribution
	Bins   []int   `json:"bins,omitempty"`
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d min=%.4g max=%.4g mean=%.4g sd=%.4g q1=%.4g median=%.4g q3=%.4g mode=%.4g sigma=%.4g",
		s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Q1, s.Median, s.Q3, s.Mode, s.Sigma)
}

// Summarizes the finite values of data into a summary with the given number of histogram bins
func Summarize(data []float64, numBins int) (Summary, error) {
	tmp := make([]float64, 0, len(data))
	for _, d := range data {
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			tmp = append(tmp, d)
		}
	}
	if len(tmp) == 0 {
		return Summary{}, ErrNoData
	}
	if numBins < 2 {
		numBins = DefaultBins
	}

	s := Summary{Count: len(tmp), Min: floats.Min(tmp), Max: floats.Max(tmp)}
	if len(tmp) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(tmp, nil)
	} else {
		s.Mean = tmp[0]
	}
	s.Median = qsort.QSelectMedian(tmp)
	qsort.QSort(tmp)
	s.Q1 = stat.Quantile(0.25, stat.Empirical, tmp, nil)
	s.Q3 = stat.Quantile(0.75, stat.Empirical, tmp, nil)

	s.Bins = make([]int, numBins)
	Histogram(tmp, s.Min, s.Max, s.Bins)
	if s.Max > s.Min {
		mode, sigma, err := FitGaussian(s.Bins, s.Min, s.Max, s.StdDev)
		if err != nil {
			return s, err
		}
		s.Mode, s.Sigma = mode, sigma
	} else {
		s.Mode = s.Min
	}
	return s, nil
}

// Statistics of a star catalog
type Catalog struct {
	Records     int     `json:"records"`
	Magnitude   Summary `json:"magnitude"`
	ColorIndex  Summary `json:"colorIndex"`
	Temperature Summary `json:"temperature"` // of records within the Planckian locus fits
}

// Summarizes magnitudes, color indices and blackbody temperatures of the given records
func OfCatalog(recs []catalog.Record, numBins int) (*Catalog, error) {
	if len(recs) == 0 {
		return nil, ErrNoData
	}
	mags := make([]float64, len(recs))
	bvs := make([]float64, len(recs))
	temps := make([]float64, 0, len(recs))
	for i, r := range recs {
		mags[i], bvs[i] = r.Magnitude, r.ColorIndex
		if t := color.Temperature(r.ColorIndex); t >= color.MinLocusTemperature && t < color.MaxLocusTemperature {
			temps = append(temps, t)
		}
	}

	c := &Catalog{Records: len(recs)}
	var err error
	if c.Magnitude, err = Summarize(mags, numBins); err != nil {
		return nil, fmt.Errorf("magnitude: %w", err)
	}
	if c.ColorIndex, err = Summarize(bvs, numBins); err != nil {
		return nil, fmt.Errorf("color index: %w", err)
	}
	if len(temps) > 0 {
		if c.Temperature, err = Summarize(temps, numBins); err != nil {
			return nil, fmt.Errorf("temperature: %w", err)
		}
	}
	return c, nil
}
