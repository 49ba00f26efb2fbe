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

package texture

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/color"
	"github.com/mlnoga/skytexture/internal/ops"
	"github.com/mlnoga/skytexture/internal/sky"
)

// Counts of catalog records by outcome
type Report struct {
	Catalog                catalog.Report `json:"catalog"`
	Records                int            `json:"records"`                // records composed
	Stars                  int            `json:"stars"`                  // stars in the scene
	ParseFailure           int            `json:"parseFailure"`           // rows skipped by the catalog reader
	TemperatureOutOfRange  int            `json:"temperatureOutOfRange"`  // color index outside the Planckian locus fits
	DegenerateChromaticity int            `json:"degenerateChromaticity"` // no usable RGB for the chromaticity
	Other                  int            `json:"other"`                  // errors outside the reasons above, e.g. from other color models
}

// Total number of records and rows that did not produce a star
func (r Report) Dropped() int {
	return r.ParseFailure + r.TemperatureOutOfRange + r.DegenerateChromaticity + r.Other
}

func (r *Report) count(err error) {
	switch {
	case errors.Is(err, catalog.ErrParse):
		r.ParseFailure++
	case errors.Is(err, color.ErrTemperatureOutOfRange):
		r.TemperatureOutOfRange++
	case errors.Is(err, color.ErrDegenerateChromaticity):
		r.DegenerateChromaticity++
	default:
		r.Other++
	}
}

// Turns catalog records into a scene of stars and rasterizes it
type Compositor struct {
	Ctx        *ops.Context
	Projector  *sky.Projector
	Radii      *sky.RadiusModel
	Colors     color.Model
	Background color.RGB
}

func NewCompositor(oc *ops.Context, p *sky.Projector, r *sky.RadiusModel, m color.Model, bg color.RGB) *Compositor {
	return &Compositor{Ctx: oc, Projector: p, Radii: r, Colors: m, Background: bg}
}

// Transforms a single record into a star, or returns the reason it must be dropped
func (c *Compositor) Star(rec catalog.Record) (Star, error) {
	col, err := c.Colors.Color(rec.ColorIndex, rec.Magnitude)
	if err != nil {
		return Star{}, err
	}
	pt := c.Projector.Project(rec.RA, rec.Dec)
	rv, rh := c.Radii.Radii(rec.Magnitude, sky.DecDegrees(rec.Dec))
	return Star{X: pt.X, Y: pt.Y, Color: col, RV: rv, RH: rh}, nil
}

// Transforms all records into a scene on the worker pool. Scene order is record order.
// Dropped records are counted per reason in the report
func (c *Compositor) Compose(ctx context.Context, recs []catalog.Record) (*Scene, Report, error) {
	w, h := c.Projector.Size()
	scene := &Scene{Width: w, Height: h, Background: c.Background}
	rep := Report{Records: len(recs)}

	stars, errs, err := ops.MapOrdered(ctx, recs, c.Ctx.MaxThreads, c.Star)
	if err != nil {
		return nil, rep, err
	}

	scene.Stars = make([]Star, 0, len(stars))
	for i, st := range stars {
		if errs[i] != nil {
			rep.count(errs[i])
			c.Ctx.Log.Debug().Str("id", recs[i].ID).Int("line", recs[i].Line).Err(errs[i]).Msg("dropping star")
			continue
		}
		scene.Stars = append(scene.Stars, st)
	}
	rep.Stars = len(scene.Stars)
	return scene, rep, nil
}

// Rasterizes a scene onto a new canvas, after checking it fits into memory
func (c *Compositor) Rasterize(ctx context.Context, scene *Scene) (*image.RGBA, error) {
	if err := c.Ctx.CheckMemory(CanvasBytes(scene.Width, scene.Height)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scene.Rasterize().Image(), nil
}

// Reads the catalog, composes the scene and rasterizes it
func (c *Compositor) Render(ctx context.Context, src catalog.Source) (*image.RGBA, *Scene, Report, error) {
	recs, catRep, err := src.Records()
	if err != nil {
		return nil, nil, Report{Catalog: catRep}, fmt.Errorf("reading catalog: %w", err)
	}
	scene, rep, err := c.Compose(ctx, recs)
	rep.Catalog, rep.ParseFailure = catRep, catRep.Skipped
	if err != nil {
		return nil, nil, rep, err
	}
	c.LogReport(rep)

	img, err := c.Rasterize(ctx, scene)
	if err != nil {
		return nil, scene, rep, err
	}
	return img, scene, rep, nil
}

// Logs a summary of the report at info level
func (c *Compositor) LogReport(rep Report) {
	c.Ctx.Log.Info().
		Int("stars", rep.Stars).
		Int("parseFailure", rep.ParseFailure).
		Int("temperatureOutOfRange", rep.TemperatureOutOfRange).
		Int("degenerateChromaticity", rep.DegenerateChromaticity).
		Int("other", rep.Other).
		Msgf("composed %d stars from %d catalog rows", rep.Stars, rep.Records+rep.ParseFailure)
}
