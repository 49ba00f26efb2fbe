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

package logging

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Placeholder for a log file name derived from the output file name
const Auto = "%auto"

// The optional additional file to log into
type logFile struct {
	w  *bufio.Writer
	os *os.File
}

func (f *logFile) Write(p []byte) (int, error) { return f.w.Write(p) }

func (f *logFile) Close() error {
	if err := f.w.Flush(); err != nil {
		f.os.Close()
		return err
	}
	return f.os.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Creates a logger writing human-readable lines to w, and also to the named file
// if fileName is not empty. The returned closer flushes and closes the log file
func New(w io.Writer, fileName string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if fileName == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	lf := &logFile{w: bufio.NewWriter(f), os: f}
	plain := zerolog.ConsoleWriter{Out: lf, NoColor: true, TimeFormat: time.RFC3339}
	multi := zerolog.MultiLevelWriter(console, plain)
	return zerolog.New(multi).Level(level).With().Timestamp().Logger(), lf, nil
}

// Resolves the %auto log file name: replaces the suffix of the output file with .log,
// or disables file logging without an output file
func FileName(logOpt, out string) string {
	if logOpt != Auto {
		return logOpt
	}
	if out == "" {
		return ""
	}
	return strings.TrimSuffix(out, filepath.Ext(out)) + ".log"
}

// Parses a level name like "debug" or "info", defaulting to info for an empty string
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(s))
}
