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
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestMapOrderedKeepsOrder(t *testing.T) {
	ins := make([]int, 5000)
	for i := range ins {
		ins[i] = i
	}
	errOdd := errors.New("odd")
	outs, errs, err := MapOrdered(context.Background(), ins, 7, func(in int) (int, error) {
		if in%2 == 1 {
			return 0, errOdd
		}
		return in * in, nil
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	for i := range ins {
		if i%2 == 1 {
			if errs[i] != errOdd {
				t.Errorf("errs[%d]=%v; want %v", i, errs[i], errOdd)
			}
			continue
		}
		if errs[i] != nil || outs[i] != i*i {
			t.Errorf("outs[%d]=%d errs[%d]=%v; want %d, nil", i, outs[i], i, errs[i], i*i)
		}
	}
}

func TestMapOrderedEmpty(t *testing.T) {
	outs, errs, err := MapOrdered(context.Background(), []string{}, 0, func(in string) (int, error) { return 1, nil })
	if len(outs) != 0 || len(errs) != 0 || err != nil {
		t.Errorf("outs=%v errs=%v err=%v", outs, errs, err)
	}
}

func TestMapOrderedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := MapOrdered(ctx, make([]int, 10), 2, func(in int) (int, error) { return in, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err=%v; want context.Canceled", err)
	}
}

func TestCheckMemory(t *testing.T) {
	c := NewContext(zerolog.Nop(), 0)
	if c.MaxThreads < 1 {
		t.Errorf("MaxThreads=%d", c.MaxThreads)
	}
	c.MemoryMB, c.CanvasMemoryMB = 1000, 700
	if err := c.CheckMemory(100 * 1024 * 1024); err != nil {
		t.Errorf("100 MiB rejected: %v", err)
	}
	if err := c.CheckMemory(800 * 1024 * 1024); err == nil {
		t.Errorf("800 MiB accepted with a budget of 700 MiB")
	}
	c.MemoryMB = 0
	if err := c.CheckMemory(1 << 40); err != nil {
		t.Errorf("unknown memory size must not reject: %v", err)
	}
}
