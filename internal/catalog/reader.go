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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mlnoga/skytexture/internal/sky"
)

// Reads catalog records row by row from comma-separated text.
// Lines starting with # are comments. Malformed rows are returned as
// *ParseError, after which reading can continue with the next row
type Reader struct {
	csv  *csv.Reader
	cols Columns
	line int
}

func NewReader(r io.Reader, cols Columns) *Reader {
	c := csv.NewReader(r)
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	c.TrimLeadingSpace = true
	c.ReuseRecord = true
	return &Reader{csv: c, cols: cols}
}

// Returns the next record, a *ParseError for a malformed row, io.EOF at
// the end of input, or another error if the underlying reader fails
func (r *Reader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			r.line = pe.Line
			return Record{}, &ParseError{Line: pe.StartLine, Err: pe.Err}
		}
		return Record{}, err
	}
	r.line, _ = r.csv.FieldPos(0)
	return r.parse(fields)
}

func (r *Reader) parse(fields []string) (rec Record, err error) {
	if len(fields) <= r.cols.max() {
		return rec, &ParseError{Line: r.line, Err: fmt.Errorf("%d fields, need %d", len(fields), r.cols.max()+1)}
	}
	rec.Line = r.line
	if r.cols.ID >= 0 {
		rec.ID = strings.TrimSpace(fields[r.cols.ID])
	} else {
		rec.ID = strconv.Itoa(r.line)
	}
	if rec.RA, err = r.parseSexagesimal("ra", fields[r.cols.RA]); err != nil {
		return rec, err
	}
	if rec.Dec, err = r.parseSexagesimal("dec", fields[r.cols.Dec]); err != nil {
		return rec, err
	}
	if rec.Magnitude, err = r.parseFloat("magnitude", fields[r.cols.Magnitude]); err != nil {
		return rec, err
	}
	if rec.ColorIndex, err = r.parseFloat("colorIndex", fields[r.cols.ColorIndex]); err != nil {
		return rec, err
	}
	return rec, nil
}

// Parses three whitespace-separated numbers, e.g. "-16 42 58.0"
func (r *Reader) parseSexagesimal(name, s string) (sky.Sexagesimal, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return sky.Sexagesimal{}, &ParseError{Line: r.line, Field: name, Err: fmt.Errorf("'%s' is not a sexagesimal triple", s)}
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := r.parseFloat(name, p)
		if err != nil {
			return sky.Sexagesimal{}, err
		}
		vals[i] = v
	}
	return sky.Sexagesimal{A: vals[0], M: vals[1], S: vals[2]}, nil
}

func (r *Reader) parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Line: r.line, Field: name, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Line: r.line, Field: name, Err: fmt.Errorf("'%s' is not finite", s)}
	}
	return v, nil
}

// Reads all records, skipping malformed rows. Returns an error only if
// the underlying reader fails
func ReadAll(rd io.Reader, cols Columns) (recs []Record, rep Report, err error) {
	r := NewReader(rd, cols)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs, rep, nil
		}
		rep.Rows++
		if err != nil {
			if !errors.Is(err, ErrParse) {
				return nil, rep, err
			}
			rep.addError(err)
			continue
		}
		recs = append(recs, rec)
		rep.Records++
	}
}
