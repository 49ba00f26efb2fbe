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

package config

import (
	"github.com/spf13/pflag"
)

// Flag names, shared by BindFlags and Merge
const (
	FlagCatalog            = "catalog"
	FlagOut                = "out"
	FlagOutDir             = "out-dir"
	FlagFormat             = "format"
	FlagQuality            = "quality"
	FlagSVG                = "svg"
	FlagGamma              = "gamma"
	FlagBrightness         = "brightness"
	FlagScale              = "scale"
	FlagBaseRadius         = "base-radius"
	FlagGrowth             = "growth"
	FlagReferenceMagnitude = "reference-magnitude"
	FlagMagnitudeOffset    = "magnitude-offset"
	FlagPoleAspectLimit    = "pole-aspect-limit"
	FlagBackground         = "background"
	FlagColorModel         = "color-model"
	FlagMaxThreads         = "max-threads"
	FlagLogLevel           = "log-level"
	FlagLog                = "log"
	FlagListen             = "listen"
)

// Registers the configuration flags on fs, bound to the fields of cfg.
// The current values of cfg become the flag defaults
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Catalog, FlagCatalog, cfg.Catalog, "read star catalog from CSV `file`, optionally gzipped")
	fs.StringVar(&cfg.Out, FlagOut, cfg.Out, "save texture to `file`, overriding the name derived from gamma and brightness")
	fs.StringVar(&cfg.OutDir, FlagOutDir, cfg.OutDir, "save textures to `directory`")
	fs.StringVar(&cfg.Format, FlagFormat, cfg.Format, "output format: png, jpg, tif or svg")
	fs.IntVar(&cfg.Quality, FlagQuality, cfg.Quality, "JPEG quality in [1,100]")
	fs.BoolVar(&cfg.SVG, FlagSVG, cfg.SVG, "also save the vector scene as SVG next to each raster texture")
	fs.Float64SliceVar(&cfg.Gammas, FlagGamma, cfg.Gammas, "gamma correction exponent(s); one texture per gamma/brightness pair")
	fs.Float64SliceVar(&cfg.Brightnesses, FlagBrightness, cfg.Brightnesses, "brightness base(s) for the magnitude-driven color scaling")
	fs.Float64Var(&cfg.Scale, FlagScale, cfg.Scale, "pixels per degree; the texture is 360*scale by 180*scale pixels")
	fs.Float64Var(&cfg.BaseRadius, FlagBaseRadius, cfg.BaseRadius, "vertical star radius in pixels at the reference magnitude")
	fs.Float64Var(&cfg.Growth, FlagGrowth, cfg.Growth, "star radius growth factor per magnitude, >1")
	fs.Float64Var(&cfg.ReferenceMagnitude, FlagReferenceMagnitude, cfg.ReferenceMagnitude, "magnitude drawn with the base radius")
	fs.Float64Var(&cfg.MagnitudeOffset, FlagMagnitudeOffset, cfg.MagnitudeOffset, "magnitude offset of the brightness coefficient")
	fs.Float64Var(&cfg.PoleAspectLimit, FlagPoleAspectLimit, cfg.PoleAspectLimit, "cap on horizontal to vertical radius ratio near the poles")
	fs.StringVar(&cfg.Background, FlagBackground, cfg.Background, "background color as hex `#rrggbb`")
	fs.StringVar(&cfg.ColorModel, FlagColorModel, cfg.ColorModel, "star color model: blackbody or table")
	fs.IntVar(&cfg.MaxThreads, FlagMaxThreads, cfg.MaxThreads, "maximum number of worker goroutines, 0=GOMAXPROCS")
	fs.StringVar(&cfg.LogLevel, FlagLogLevel, cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Log, FlagLog, cfg.Log, "save log output to `file`. `%auto` replaces suffix of output file with .log")
	fs.StringVar(&cfg.Listen, FlagListen, cfg.Listen, "address to listen on for serve")
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set
type configSetter struct {
	changed map[string]bool
}

func set[T any](s configSetter, flag string, value T, dst *T) {
	if s.changed[flag] {
		return
	}
	*dst = value
}

// Overlays the layered configuration src onto dst, which holds the flag values,
// for every flag not explicitly set on the command line
func Merge(dst *Config, src Config, changed map[string]bool) {
	s := configSetter{changed: changed}
	set(s, FlagCatalog, src.Catalog, &dst.Catalog)
	set(s, FlagOut, src.Out, &dst.Out)
	set(s, FlagOutDir, src.OutDir, &dst.OutDir)
	set(s, FlagFormat, src.Format, &dst.Format)
	set(s, FlagQuality, src.Quality, &dst.Quality)
	set(s, FlagSVG, src.SVG, &dst.SVG)
	set(s, FlagGamma, src.Gammas, &dst.Gammas)
	set(s, FlagBrightness, src.Brightnesses, &dst.Brightnesses)
	set(s, FlagScale, src.Scale, &dst.Scale)
	set(s, FlagBaseRadius, src.BaseRadius, &dst.BaseRadius)
	set(s, FlagGrowth, src.Growth, &dst.Growth)
	set(s, FlagReferenceMagnitude, src.ReferenceMagnitude, &dst.ReferenceMagnitude)
	set(s, FlagMagnitudeOffset, src.MagnitudeOffset, &dst.MagnitudeOffset)
	set(s, FlagPoleAspectLimit, src.PoleAspectLimit, &dst.PoleAspectLimit)
	set(s, FlagBackground, src.Background, &dst.Background)
	set(s, FlagColorModel, src.ColorModel, &dst.ColorModel)
	set(s, FlagMaxThreads, src.MaxThreads, &dst.MaxThreads)
	set(s, FlagLogLevel, src.LogLevel, &dst.LogLevel)
	set(s, FlagLog, src.Log, &dst.Log)
	set(s, FlagListen, src.Listen, &dst.Listen)
	dst.Columns = src.Columns
}

// Returns the set of flags explicitly given on the command line
func Changed(fs *pflag.FlagSet) map[string]bool {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}
