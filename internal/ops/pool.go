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

package ops

import (
	"context"
)

// Number of inputs handled by one goroutine
const chunkSize = 1024

// Applies fn to all inputs, running at most maxThreads goroutines at a time.
// Results and per-input errors are stored by input index, so their order is
// independent of scheduling. Stops starting new work once ctx is done,
// and returns ctx.Err() in that case
func MapOrdered[In, Out any](ctx context.Context, ins []In, maxThreads int, fn func(in In) (Out, error)) (outs []Out, errs []error, err error) {
	outs = make([]Out, len(ins))
	errs = make([]error, len(ins))
	if len(ins) == 0 {
		return outs, errs, nil
	}
	if maxThreads < 1 {
		maxThreads = 1
	}

	limiter := make(chan bool, maxThreads)
	for start := 0; start < len(ins); start += chunkSize {
		if err = ctx.Err(); err != nil {
			break
		}
		end := start + chunkSize
		if end > len(ins) {
			end = len(ins)
		}
		limiter <- true
		go func(start, end int) {
			defer func() { <-limiter }()
			for i := start; i < end; i++ {
				outs[i], errs[i] = fn(ins[i])
			}
		}(start, end)
	}
	for i := 0; i < cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
	return outs, errs, err
}
