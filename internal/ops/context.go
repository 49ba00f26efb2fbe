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
	"fmt"
	"runtime"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
)

// An execution context for the texture pipeline
type Context struct {
	Log            zerolog.Logger
	MemoryMB       int // memory.TotalMemory()/1024/1024, 0 if unknown
	CanvasMemoryMB int // MemoryMB*7/10
	MaxThreads     int `json:"maxThreads"`
}

// Creates a context for the current machine. maxThreads<=0 selects GOMAXPROCS
func NewContext(log zerolog.Logger, maxThreads int) *Context {
	memoryMB := int(memory.TotalMemory() / 1024 / 1024)
	if maxThreads <= 0 {
		maxThreads = runtime.GOMAXPROCS(0)
	}
	return &Context{
		Log:            log,
		MemoryMB:       memoryMB,
		CanvasMemoryMB: memoryMB * 7 / 10,
		MaxThreads:     maxThreads,
	}
}

// Returns an error if an allocation of the given number of bytes would exceed the canvas memory budget.
// Always succeeds if the physical memory size is unknown
func (c *Context) CheckMemory(bytes int64) error {
	if c.MemoryMB <= 0 {
		return nil
	}
	mb := bytes / 1024 / 1024
	if mb > int64(c.CanvasMemoryMB) {
		return fmt.Errorf("canvas needs %d MiB, more than %d MiB available (70%% of %d MiB physical memory)",
			mb, c.CanvasMemoryMB, c.MemoryMB)
	}
	return nil
}
