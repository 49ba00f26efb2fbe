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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/color"
	"github.com/mlnoga/skytexture/internal/ops"
	"github.com/mlnoga/skytexture/internal/sky"
	"github.com/mlnoga/skytexture/internal/texture"
)

// Supported output formats, selected by file suffix
var formats = map[string]bool{"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true, "svg": true}

// Settings of a texture run. Pinned once at startup: defaults, then the
// config file, then SKYTEXTURE_* environment variables, then command line flags
type Config struct {
	Catalog string          `toml:"catalog" env:"CATALOG" json:"catalog"`
	Columns catalog.Columns `toml:"columns" envPrefix:"COLUMN_" json:"columns"`

	OutDir  string `toml:"out_dir" env:"OUT_DIR" json:"outDir"`
	Out     string `toml:"out" env:"OUT" json:"out"`
	Format  string `toml:"format" env:"FORMAT" json:"format"`
	Quality int    `toml:"quality" env:"QUALITY" json:"quality"`
	SVG     bool   `toml:"svg" env:"SVG" json:"svg"`

	Gammas       []float64 `toml:"gamma" env:"GAMMA" envSeparator:"," json:"gamma"`
	Brightnesses []float64 `toml:"brightness" env:"BRIGHTNESS" envSeparator:"," json:"brightness"`

	Scale              float64 `toml:"scale" env:"SCALE" json:"scale"`
	BaseRadius         float64 `toml:"base_radius" env:"BASE_RADIUS" json:"baseRadius"`
	Growth             float64 `toml:"growth" env:"GROWTH" json:"growth"`
	ReferenceMagnitude float64 `toml:"reference_magnitude" env:"REFERENCE_MAGNITUDE" json:"referenceMagnitude"`
	MagnitudeOffset    float64 `toml:"magnitude_offset" env:"MAGNITUDE_OFFSET" json:"magnitudeOffset"`
	PoleAspectLimit    float64 `toml:"pole_aspect_limit" env:"POLE_ASPECT_LIMIT" json:"poleAspectLimit"`
	Background         string  `toml:"background" env:"BACKGROUND" json:"background"`
	ColorModel         string  `toml:"color_model" env:"COLOR_MODEL" json:"colorModel"`

	MaxThreads int    `toml:"max_threads" env:"MAX_THREADS" json:"maxThreads"`
	LogLevel   string `toml:"log_level" env:"LOG_LEVEL" json:"logLevel"`
	Log        string `toml:"log" env:"LOG" json:"log"`
	Listen     string `toml:"listen" env:"LISTEN" json:"listen"`
}

// Returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Catalog:            "hip.csv",
		Columns:            catalog.DefaultColumns,
		OutDir:             "png",
		Format:             "png",
		Quality:            95,
		Gammas:             []float64{3.9},
		Brightnesses:       []float64{2.5},
		Scale:              sky.DefaultScale,
		BaseRadius:         sky.DefaultBaseRadius,
		Growth:             sky.DefaultGrowth,
		ReferenceMagnitude: sky.DefaultReferenceMagnitude,
		MagnitudeOffset:    color.DefaultMagnitudeOffset,
		PoleAspectLimit:    sky.DefaultPoleAspectLimit,
		Background:         "#000000",
		ColorModel:         color.ModelBlackbody,
		LogLevel:           "info",
		Log:                "",
		Listen:             ":8080",
	}
}

// Checks the configuration for errors
func (c *Config) Validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if err := c.Columns.Validate(); err != nil {
		return err
	}
	if !(c.Scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if !(c.BaseRadius > 0) {
		return fmt.Errorf("base radius must be positive, got %g", c.BaseRadius)
	}
	if !(c.Growth > 1) {
		return fmt.Errorf("growth must be greater than 1, got %g", c.Growth)
	}
	if !(c.PoleAspectLimit >= 1) {
		return fmt.Errorf("pole aspect limit must be at least 1, got %g", c.PoleAspectLimit)
	}
	if len(c.Gammas) == 0 || len(c.Brightnesses) == 0 {
		return fmt.Errorf("need at least one gamma and one brightness")
	}
	for _, g := range c.Gammas {
		if !(g > 0) {
			return fmt.Errorf("gamma must be positive, got %g", g)
		}
	}
	for _, b := range c.Brightnesses {
		if !(b > 0) {
			return fmt.Errorf("brightness must be positive, got %g", b)
		}
	}
	if c.Out != "" && len(c.Gammas)*len(c.Brightnesses) > 1 {
		return fmt.Errorf("out names a single file, but %d gamma/brightness pairs were given", len(c.Gammas)*len(c.Brightnesses))
	}
	if !formats[strings.ToLower(c.Format)] {
		return fmt.Errorf("unknown output format '%s'", c.Format)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("JPEG quality must be in [1,100], got %d", c.Quality)
	}
	if _, err := c.BackgroundRGB(); err != nil {
		return err
	}
	if _, err := color.NewModel(c.ColorModel, c.Corrector(1, 1)); err != nil {
		return err
	}
	return nil
}

// Returns the background color on the percentage scale
func (c *Config) BackgroundRGB() (color.RGB, error) {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return color.RGB{}, fmt.Errorf("background color '%s': %w", c.Background, err)
	}
	return color.RGB{R: bg.R * 100, G: bg.G * 100, B: bg.B * 100}, nil
}

// Returns a perceptual corrector for the given parameters
func (c *Config) Corrector(gamma, brightness float64) *color.Corrector {
	return &color.Corrector{Gamma: gamma, Brightness: brightness, Offset: c.MagnitudeOffset}
}

// Returns the color model for the given parameters
func (c *Config) ColorModelFor(gamma, brightness float64) (color.Model, error) {
	return color.NewModel(c.ColorModel, c.Corrector(gamma, brightness))
}

func (c *Config) Projector() *sky.Projector {
	return sky.NewProjector(c.Scale)
}

func (c *Config) RadiusModel() *sky.RadiusModel {
	return &sky.RadiusModel{
		BaseRadius:         c.BaseRadius,
		Growth:             c.Growth,
		ReferenceMagnitude: c.ReferenceMagnitude,
		PoleAspectLimit:    c.PoleAspectLimit,
	}
}

// Returns a compositor for the given variant
func (c *Config) Compositor(oc *ops.Context, v Variant) (*texture.Compositor, error) {
	m, err := c.ColorModelFor(v.Gamma, v.Brightness)
	if err != nil {
		return nil, err
	}
	bg, err := c.BackgroundRGB()
	if err != nil {
		return nil, err
	}
	return texture.NewCompositor(oc, c.Projector(), c.RadiusModel(), m, bg), nil
}

// Returns the catalog source named by the configuration
func (c *Config) Source() catalog.Source {
	return catalog.NewCSVSource(c.Catalog, c.Columns)
}

// A gamma/brightness combination selecting one output variant
type Variant struct {
	Gamma      float64 `json:"gamma"`
	Brightness float64 `json:"brightness"`
}

// Returns all gamma/brightness pairs, gamma-major
func (c *Config) Variants() []Variant {
	vs := make([]Variant, 0, len(c.Gammas)*len(c.Brightnesses))
	for _, g := range c.Gammas {
		for _, b := range c.Brightnesses {
			vs = append(vs, Variant{Gamma: g, Brightness: b})
		}
	}
	return vs
}

// Returns the output file name for a variant: the explicit output file if given,
// else texture<gamma>_<brightness>.<format> in the output directory
func (c *Config) OutputName(v Variant) string {
	if c.Out != "" {
		return c.Out
	}
	name := "texture" + formatFloat(v.Gamma) + "_" + formatFloat(v.Brightness) + "." + strings.ToLower(c.Format)
	return filepath.Join(c.OutDir, name)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
