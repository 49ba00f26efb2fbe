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

package main

import (
	"context"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlnoga/skytexture/internal/catalog"
	"github.com/mlnoga/skytexture/internal/texture"
)

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render one texture per gamma/brightness pair",
		Long: `Reads the catalog once and renders one texture per gamma/brightness pair,
named texture<gamma>_<brightness>.<format> in the output directory unless --out is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context())
		},
	}
}

func (a *app) render(ctx context.Context) error {
	recs, catRep, err := a.readCatalog()
	if err != nil {
		return err
	}

	for _, v := range a.cfg.Variants() {
		comp, err := a.cfg.Compositor(a.ctx, v)
		if err != nil {
			return err
		}
		a.log.Info().Float64("gamma", v.Gamma).Float64("brightness", v.Brightness).Msg("composing")
		scene, rep, err := comp.Compose(ctx, recs)
		if err != nil {
			return err
		}
		rep.Catalog, rep.ParseFailure = catRep, catRep.Skipped
		comp.LogReport(rep)

		name := a.cfg.OutputName(v)
		format, err := texture.FormatFromName(name)
		if err != nil {
			return err
		}
		var img *image.RGBA
		if format != texture.FormatSVG {
			if img, err = comp.Rasterize(ctx, scene); err != nil {
				return err
			}
		}
		if err := texture.WriteFile(name, img, scene, a.cfg.Quality); err != nil {
			return err
		}
		a.log.Info().Str("file", name).Msg("wrote texture")

		if a.cfg.SVG && format != texture.FormatSVG {
			svgName := strings.TrimSuffix(name, filepath.Ext(name)) + ".svg"
			if err := texture.WriteFile(svgName, nil, scene, 0); err != nil {
				return err
			}
			a.log.Info().Str("file", svgName).Msg("wrote scene")
		}
	}
	return nil
}

// Reads the configured catalog, logging the rows skipped as malformed
func (a *app) readCatalog() ([]catalog.Record, catalog.Report, error) {
	a.log.Info().Str("catalog", a.cfg.Catalog).Msg("reading catalog")
	recs, rep, err := a.cfg.Source().Records()
	if err != nil {
		return nil, rep, err
	}
	for _, e := range rep.Errors {
		a.log.Debug().Err(e).Msg("skipping row")
	}
	ev := a.log.Info()
	if rep.Skipped > 0 {
		ev = a.log.Warn()
	}
	ev.Int("rows", rep.Rows).Int("records", rep.Records).Int("skipped", rep.Skipped).Msg("catalog read")
	return recs, rep, nil
}
