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

package catalog

import (
	"errors"
	"fmt"

	"github.com/mlnoga/skytexture/internal/sky"
)

// Marks a catalog row that could not be parsed. Such rows are skipped
var ErrParse = errors.New("malformed catalog row")

// One star of the input catalog
type Record struct {
	ID         string          `json:"id"`
	RA         sky.Sexagesimal `json:"ra"`         // hours, minutes, seconds
	Dec        sky.Sexagesimal `json:"dec"`        // degrees, arcminutes, arcseconds
	Magnitude  float64         `json:"magnitude"`  // apparent visual magnitude, lower is brighter
	ColorIndex float64         `json:"colorIndex"` // B-V
	Line       int             `json:"line"`       // 1-based source line, for diagnostics
}

func (r Record) String() string {
	return fmt.Sprintf("%s: ra %v dec %v mag %.2f B-V %.3f", r.ID, r.RA, r.Dec, r.Magnitude, r.ColorIndex)
}

// A row which failed to parse. Wraps ErrParse
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Zero-based column indices of the catalog fields
type Columns struct {
	ID         int `toml:"id" env:"ID" json:"id"`
	RA         int `toml:"ra" env:"RA" json:"ra"`
	Dec        int `toml:"dec" env:"DEC" json:"dec"`
	Magnitude  int `toml:"magnitude" env:"MAGNITUDE" json:"magnitude"`
	ColorIndex int `toml:"color_index" env:"COLOR_INDEX" json:"colorIndex"`
}

// Column layout of the Hipparcos extract: id, "h m s", "d m s", Vmag, B-V
var DefaultColumns = Columns{ID: 0, RA: 1, Dec: 2, Magnitude: 3, ColorIndex: 4}

func (c Columns) max() int {
	m := c.ID
	for _, i := range []int{c.RA, c.Dec, c.Magnitude, c.ColorIndex} {
		if i > m {
			m = i
		}
	}
	return m
}

// Checks that all required columns have non-negative indices
func (c Columns) Validate() error {
	for _, i := range []int{c.RA, c.Dec, c.Magnitude, c.ColorIndex} {
		if i < 0 {
			return fmt.Errorf("negative catalog column index in %+v", c)
		}
	}
	return nil
}

// Summary of a catalog read
type Report struct {
	Rows    int     `json:"rows"`    // rows seen, excluding comments
	Records int     `json:"records"` // rows parsed into records
	Skipped int     `json:"skipped"` // rows dropped as malformed
	Errors  []error `json:"-"`       // the first MaxReportedErrors parse errors
}

// Number of parse errors retained in a Report
const MaxReportedErrors = 16

func (r *Report) addError(err error) {
	r.Skipped++
	if len(r.Errors) < MaxReportedErrors {
		r.Errors = append(r.Errors, err)
	}
}
