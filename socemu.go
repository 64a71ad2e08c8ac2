// This file is part of socemu.
//
// socemu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// socemu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with socemu.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/environment"
	"github.com/mdpp/socemu/hardware"
	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/monitor"
	"github.com/mdpp/socemu/statsview"
	"github.com/mdpp/socemu/version"
	"github.com/spf13/cobra"
)

// options common to every command that composes a machine.
var platformOpts = struct {
	config   string
	props    []string
	firmware string
	kernel   string
	append   string
	dtb      string
}{}

var (
	runOpts = struct {
		log       bool
		statsview string
		script    string
	}{}

	dtbOpts = struct {
		output string
		source bool
	}{}

	rootCmd = &cobra.Command{
		Use:   "socemu",
		Short: "Virtual platform of the MDPP system-on-chip",
		Long: `socemu composes the MDPP board from a platform description: memory map,
cores, interrupt controllers and peripherals. It emits the hardware
description blob handed to the firmware and places the boot images.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Compose the board and attach the monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	dtbCmd = &cobra.Command{
		Use:   "dtb",
		Short: "Write the hardware description of the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform()
			if err != nil {
				return err
			}
			return dtb(cfg, cmd.OutOrStdout())
		},
	}

	bootromCmd = &cobra.Command{
		Use:   "bootrom",
		Short: "List the reset vector of the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform()
			if err != nil {
				return err
			}
			m, err := probe(cfg)
			if err != nil {
				return err
			}
			defer m.Close()
			fmt.Fprint(cmd.OutOrStdout(), m.Vector.Listing(memorymap.Lookup(memorymap.MROM).Base))
			return nil
		},
	}

	graphCmd = &cobra.Command{
		Use:   "graph",
		Short: "Write the description tree as a Graphviz graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform()
			if err != nil {
				return err
			}
			m, err := probe(cfg)
			if err != nil {
				return err
			}
			defer m.Close()
			if m.Description == nil {
				return fmt.Errorf("no description tree for external blob %s", cfg.DTB)
			}
			memviz.Map(cmd.OutOrStdout(), m.Description)
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective platform description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platform()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}

	propertiesCmd = &cobra.Command{
		Use:   "properties",
		Short: "List the machine properties accepted by --prop",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.PropertyNames(), "\n"))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&platformOpts.config, "config", "c", "", "platform description file (YAML)")
	pf.StringArrayVarP(&platformOpts.props, "prop", "p", nil, "machine properties: key=value[,key=value...]")
	pf.StringVar(&platformOpts.firmware, "firmware", "", "firmware image (ELF or raw) or \"none\"")
	pf.StringVar(&platformOpts.kernel, "kernel", "", "kernel image (ELF or raw)")
	pf.StringVar(&platformOpts.append, "append", "", "kernel command line")
	pf.StringVar(&platformOpts.dtb, "dtb", "", "use an external description blob")

	runCmd.Flags().BoolVarP(&runOpts.log, "log", "l", false, "echo log entries to the terminal")
	runCmd.Flags().StringVar(&runOpts.statsview, "statsview", "", "address of the runtime statistics server")
	runCmd.Flags().StringVarP(&runOpts.script, "script", "s", "", "monitor commands to run before the terminal")

	dtbCmd.Flags().StringVarP(&dtbOpts.output, "output", "o", "", "output file")
	dtbCmd.Flags().BoolVar(&dtbOpts.source, "dts", false, "write source form instead of the blob")

	rootCmd.AddCommand(runCmd, dtbCmd, bootromCmd, graphCmd, configCmd, propertiesCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(10)
	}
}

// platform returns the platform selected by the command line. Flags take
// precedence over properties, which take precedence over the file.
func platform() (config.Platform, error) {
	cfg := config.Default()

	if platformOpts.config != "" {
		var err error
		cfg, err = config.Load(platformOpts.config)
		if err != nil {
			return cfg, err
		}
	}

	for _, p := range platformOpts.props {
		if err := cfg.SetProperties(p); err != nil {
			return cfg, err
		}
	}

	if platformOpts.firmware != "" {
		cfg.Firmware = platformOpts.firmware
	}
	if platformOpts.kernel != "" {
		cfg.Kernel = platformOpts.kernel
	}
	if platformOpts.append != "" {
		cfg.Append = platformOpts.append
	}
	if platformOpts.dtb != "" {
		cfg.DTB = platformOpts.dtb
	}

	return cfg, cfg.Validate()
}

// probe composes a silent machine with no host backends.
func probe(cfg config.Platform) (*hardware.Machine, error) {
	cfg.NoBackends()
	return hardware.NewMachine(environment.NewEnvironment(environment.ProbeEmulation), cfg)
}

func dtb(cfg config.Platform, output io.Writer) error {
	m, err := probe(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if dtbOpts.output != "" {
		f, err := os.Create(dtbOpts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	if dtbOpts.source {
		if m.Description == nil {
			return fmt.Errorf("no source form for external blob %s", cfg.DTB)
		}
		return m.Description.WriteDTS(output)
	}

	_, err = output.Write(m.Blob)
	return err
}

func run(ctx context.Context, cfg config.Platform, input io.Reader, output io.Writer) error {
	if runOpts.log {
		logger.SetEcho(output)
		defer logger.SetEcho(nil)
	}

	if runOpts.statsview != "" {
		statsview.Launch(output, runOpts.statsview)
	}

	m, err := hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation), cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.Start(ctx)

	fmt.Fprint(output, m.Summary())

	mon := monitor.NewMonitor(m, output)

	if runOpts.script != "" {
		f, err := os.Open(runOpts.script)
		if err != nil {
			return err
		}
		err = mon.Run(ctx, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	mon.Prompt = true
	return mon.Run(ctx, input)
}
