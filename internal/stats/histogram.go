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

	"gonum.org/v1/gonum/optimize"
)

var ErrEmptyHistogram = errors.New("empty histogram")

// Calculates the histogram of data between min and max into the given bins.
// Values outside [min, max] and NaNs are ignored
func Histogram(data []float64, min, max float64, bins []int) {
	for i := range bins {
		bins[i] = 0
	}
	if !(max > min) {
		return
	}
	scale := float64(len(bins)-1) / (max - min)
	for _, d := range data {
		if !(d >= min && d <= max) {
			continue
		}
		bins[int((d-min)*scale)]++
	}
}

// Returns the center of the given histogram bin
func binCenter(i int, min, max float64, numBins int) float64 {
	return min + (float64(i)+0.5)*(max-min)/float64(numBins-1)
}

// Returns the location and the value of the histogram peak
func Peak(bins []int, min, max float64) (x, y float64) {
	maxIndex, maxValue := -1, math.MinInt
	for i, v := range bins {
		if v > maxValue {
			maxIndex, maxValue = i, v
		}
	}
	if maxIndex < 0 {
		return math.NaN(), 0
	}
	return binCenter(maxIndex, min, max, len(bins)), float64(maxValue)
}

// Fits a normal distribution to the histogram with the Nelder-Mead method,
// starting from the peak and the given standard deviation guess.
// Returns the mode and the standard deviation of the fit
func FitGaussian(bins []int, min, max, sigmaGuess float64) (mode, stdDev float64, err error) {
	peak, peakVal := Peak(bins, min, max)
	if peakVal <= 0 {
		return math.NaN(), math.NaN(), ErrEmptyHistogram
	}
	if !(sigmaGuess > 0) {
		sigmaGuess = (max - min) / float64(len(bins))
	}

	// model y = alpha/(sigma*sqrt(2pi)) * exp(-0.5*((x-mu)/sigma)^2)
	x0 := []float64{peakVal * sigmaGuess * math.Sqrt(2*math.Pi), peak, sigmaGuess}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			alpha, mu, sigma := x[0], x[1], x[2]
			if !(sigma > 0) {
				return math.Inf(1)
			}
			scaler := alpha / (sigma * math.Sqrt(2*math.Pi))
			sumSqDiff := 0.0
			for i, y := range bins {
				xmusig := (binCenter(i, min, max, len(bins)) - mu) / sigma
				diff := float64(y) - scaler*math.Exp(-0.5*xmusig*xmusig)
				sumSqDiff += diff * diff
			}
			if math.IsNaN(sumSqDiff) {
				return math.Inf(1)
			}
			return math.Sqrt(sumSqDiff / float64(len(bins)))
		},
	}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return result.X[1], result.X[2], nil
}
