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
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mlnoga/skytexture/internal/config"
	"github.com/mlnoga/skytexture/internal/logging"
	"github.com/mlnoga/skytexture/internal/ops"
)

const version = "0.1.0"

// State shared by all commands, set up before a command runs
type app struct {
	configPath string
	cpuprofile string
	memprofile string

	flags  config.Config // bound to the command line flags
	cfg    config.Config // effective configuration
	log    zerolog.Logger
	ctx    *ops.Context
	closer io.Closer
	start  time.Time
	cpu    *os.File
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{flags: config.DefaultConfig(), log: zerolog.Nop()}
	if err := a.execute(ctx, a.rootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// Runs the command line and logs a failure. Profiles and the log file are
// finished afterwards whether the command succeeded or not
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed")
	}
	if terr := a.teardown(); err == nil {
		err = terr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skytexture",
		Short: "Render a star catalog into an equirectangular sky texture",
		Long: `skytexture Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Renders every star of a catalog as a colored ellipse onto a full-sky texture,
with colors derived from the B-V color index and sizes from the apparent magnitude.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultConfigPath(), "read configuration from TOML `file`")
	pf.StringVar(&a.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	pf.StringVar(&a.memprofile, "memprofile", "", "write memory profile to `file`")
	config.BindFlags(pf, &a.flags)

	root.AddCommand(a.renderCmd(), a.statsCmd(), a.serveCmd(), versionCmd(), legalCmd())
	return root
}

// Loads the layered configuration, sets up logging, the execution context and profiling
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.start = time.Now()
	changed := config.Changed(cmd.Flags())
	layered, err := config.Load(a.configPath, changed["config"])
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	a.cfg = a.flags
	config.Merge(&a.cfg, layered, changed)
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	logName := logging.FileName(a.cfg.Log, a.cfg.OutputName(a.cfg.Variants()[0]))
	if logName != "" {
		if err := os.MkdirAll(filepath.Dir(logName), 0755); err != nil {
			return err
		}
	}
	a.log, a.closer, err = logging.New(os.Stderr, logName, level)
	if err != nil {
		return fmt.Errorf("unable to open logfile '%s': %w", logName, err)
	}
	a.ctx = ops.NewContext(a.log, a.cfg.MaxThreads)
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")

	if a.cpuprofile != "" {
		if a.cpu, err = os.Create(a.cpuprofile); err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(a.cpu); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	return nil
}

// Stops profiling, writes the memory profile and closes the log.
// Only finishes what setup got to start
func (a *app) teardown() error {
	if a.start.IsZero() {
		return nil
	}
	var err error
	if a.cpu != nil {
		pprof.StopCPUProfile()
		a.cpu.Close()
		a.cpu = nil
	}
	if a.memprofile != "" {
		err = writeMemProfile(a.memprofile)
	}
	a.log.Info().Dur("elapsed", time.Since(a.start)).Msg("done")
	if a.closer != nil {
		if cerr := a.closer.Close(); err == nil {
			err = cerr
		}
		a.closer = nil
	}
	a.log = zerolog.Nop()
	a.start = time.Time{}
	return err
}

func writeMemProfile(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()
	runtime.GC() // get up-to-date statistics
	if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
		return fmt.Errorf("could not write allocation profile: %w", err)
	}
	return nil
}
