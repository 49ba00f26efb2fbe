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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Supplies the records of a star catalog
type Source interface {
	Records() ([]Record, Report, error)
}

// A catalog in a CSV file. Decompresses gzip if .gz or .gzip suffix is present
type CSVSource struct {
	Path    string
	Columns Columns
}

func NewCSVSource(path string, cols Columns) *CSVSource {
	return &CSVSource{Path: path, Columns: cols}
}

func (s *CSVSource) Records() ([]Record, Report, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	lExt := strings.ToLower(filepath.Ext(s.Path))
	if lExt == ".gz" || lExt == ".gzip" {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, Report{}, fmt.Errorf("open catalog %s: %w", s.Path, err)
		}
		defer gz.Close()
		r = gz
	}

	recs, rep, err := ReadAll(r, s.Columns)
	if err != nil {
		return nil, rep, fmt.Errorf("read catalog %s: %w", s.Path, err)
	}
	return recs, rep, nil
}

// An in-memory catalog
type Static []Record

func (s Static) Records() ([]Record, Report, error) {
	recs := make([]Record, len(s))
	copy(recs, s)
	return recs, Report{Rows: len(s), Records: len(s)}, nil
}
