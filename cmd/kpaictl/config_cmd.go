// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ManuGH/kpai/internal/config"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate and inspect the tuning table",
	}
	cmd.AddCommand(
		newConfigValidateCmd(opts),
		newConfigDumpCmd(opts),
		newConfigGetCmd(opts),
		newConfigOptionsCmd(),
	)
	return cmd
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.load()
			if err != nil {
				return err
			}
			src := opts.configPath
			if src == "" {
				src = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (profile %s, %d options)\n", src, store.Profile().Name, len(store.Names()))
			return nil
		},
	}
}

func newConfigDumpCmd(opts *rootOptions) *cobra.Command {
	var output string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration",
		Long:  "Print every tuning option with its value and source, or write the effective configuration as an override file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.load()
			if err != nil {
				return err
			}

			if output != "" {
				if err := config.WriteTemplate(output, store); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
				return nil
			}

			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(config.ToFileConfig(store)); err != nil {
					return err
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OPTION\tVALUE\tSOURCE")
			for _, name := range store.Names() {
				v, _ := store.Get(name)
				src, _ := store.Source(name)
				fmt.Fprintf(tw, "%s\t%v\t%s\n", name, v, src)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the effective configuration to this YAML file")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as an override file instead of a table")
	return cmd
}

func newConfigGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print one tuning option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.load()
			if err != nil {
				return err
			}
			v, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", config.ErrUnknownOption, args[0])
			}
			src, _ := store.Source(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%v (%s)\n", v, src)
			return nil
		},
	}
}

// newConfigOptionsCmd prints the option registry as a markdown table for
// the configuration guide.
func newConfigOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the tuning option reference as markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := config.GetRegistry()
			if err != nil {
				return fmt.Errorf("get registry: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "| Option | Env | Unit | Default |")
			fmt.Fprintln(out, "|---|---|---|---|")
			for _, name := range reg.Names() {
				e := reg.ByName[name]
				fmt.Fprintf(out, "| `%s` | `%s` | %s | %s |\n", e.Name, e.Env, e.Unit, formatDefault(e))
			}
			return nil
		},
	}
}

func formatDefault(e config.Entry) string {
	switch e.Unit {
	case config.UnitSeconds:
		return fmt.Sprintf("%v s (%v ticks at %d ticks/s)", e.Default, e.Default.(int)*host.DefaultGameSpeed, host.DefaultGameSpeed)
	case config.UnitSquares:
		return fmt.Sprintf("%v squares (%v elmos)", e.Default, e.Default.(float64)*host.DefaultSquareSize)
	}
	return fmt.Sprintf("%v", e.Default)
}
