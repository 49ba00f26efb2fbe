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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlnoga/skytexture/internal/stats"
)

func (a *app) statsCmd() *cobra.Command {
	var asJSON bool
	var bins int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics and drop counts without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, catRep, err := a.readCatalog()
			if err != nil {
				return err
			}
			comp, err := a.cfg.Compositor(a.ctx, a.cfg.Variants()[0])
			if err != nil {
				return err
			}
			_, rep, err := comp.Compose(cmd.Context(), recs)
			if err != nil {
				return err
			}
			rep.Catalog, rep.ParseFailure = catRep, catRep.Skipped

			st, err := stats.OfCatalog(recs, bins)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				m, err := json.MarshalIndent(map[string]interface{}{"report": rep, "catalog": st}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", m)
				return nil
			}
			fmt.Fprintf(out, "Rows %d, records %d, stars %d\n", catRep.Rows, rep.Records, rep.Stars)
			fmt.Fprintf(out, "Dropped: parse failure %d, temperature out of range %d, degenerate chromaticity %d, other %d\n",
				rep.ParseFailure, rep.TemperatureOutOfRange, rep.DegenerateChromaticity, rep.Other)
			fmt.Fprintf(out, "Magnitude   %v\n", st.Magnitude)
			fmt.Fprintf(out, "Color index %v\n", st.ColorIndex)
			fmt.Fprintf(out, "Temperature %v\n", st.Temperature)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	cmd.Flags().IntVar(&bins, "bins", stats.DefaultBins, "number of histogram bins for the distribution fits")
	return cmd
}
