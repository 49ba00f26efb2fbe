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
	"github.com/spf13/cobra"

	"github.com/mlnoga/skytexture/internal/rest"
)

func (a *app) serveCmd() *cobra.Command {
	var chroot string
	var setuid int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve textures rendered on request over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rest.NewServer(a.cfg, a.ctx, a.cfg.Source())
			if err := s.Load(); err != nil {
				return err
			}
			if err := rest.MakeSandbox(a.log, chroot, setuid); err != nil {
				return err
			}
			return s.Serve()
		},
	}
	cmd.Flags().StringVar(&chroot, "chroot", "", "change filesystem root to `directory` after reading the catalog (requires root)")
	cmd.Flags().IntVar(&setuid, "setuid", -1, "change user ID to `uid` after reading the catalog, -1 keeps the current user")
	return cmd
}
