// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// kpaictl inspects and exercises the bot's configuration offline.
//
// Usage:
//
//	kpaictl config validate -f kpai.yaml
//	kpaictl config get importantRadius --set importantRadius=800
//	kpaictl policy eval --geospots 12 --width 256 --height 256
//	kpaictl status inspect /tmp/kpai/status.txt
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ManuGH/kpai/internal/config"
	"github.com/ManuGH/kpai/internal/host"
	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	profile    string
	dataDir    string
	lenient    bool
	logLevel   string
	set        []string
	host       host.Constants
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{host: host.DefaultConstants()}

	root := &cobra.Command{
		Use:           "kpaictl",
		Short:         "Inspect kpai configuration, policies and status dumps",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Configure(log.Config{
				Level:   opts.logLevel,
				Output:  cmd.ErrOrStderr(),
				Service: "kpaictl",
				Version: version.Version,
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "file", "f", "", "path to YAML override file")
	pf.StringVar(&opts.profile, "profile", "", "policy profile (overrides file, KPAI_PROFILE and defaults)")
	pf.StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides file, KPAI_DATA and defaults)")
	pf.BoolVar(&opts.lenient, "lenient", false, "ignore unknown tuning options instead of failing")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringArrayVar(&opts.set, "set", nil, "override a tuning option (name=value, repeatable)")
	pf.IntVar(&opts.host.GameSpeed, "game-speed", host.DefaultGameSpeed, "host ticks per game second")
	pf.IntVar(&opts.host.SquareSize, "square-size", host.DefaultSquareSize, "host elmos per map square")
	pf.IntVar(&opts.host.MaxUnits, "max-units", host.DefaultMaxUnits, "host unit cap")

	root.AddCommand(
		newConfigCmd(opts),
		newPolicyCmd(opts),
		newInfluenceCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

// load builds the configuration table from the root flags.
func (o *rootOptions) load() (*config.Store, error) {
	overrides, err := parseSet(o.set)
	if err != nil {
		return nil, err
	}
	loaderOpts := []config.Option{config.WithOverrides(overrides)}
	if o.profile != "" {
		loaderOpts = append(loaderOpts, config.WithProfile(o.profile))
	}
	if o.dataDir != "" {
		loaderOpts = append(loaderOpts, config.WithDataDir(o.dataDir))
	}
	if o.lenient {
		loaderOpts = append(loaderOpts, config.WithLenient())
	}
	return config.NewLoader(o.configPath, o.host, loaderOpts...).Load()
}

func parseSet(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("--set %q: expected name=value", p)
		}
		out[strings.TrimSpace(name)] = value
	}
	return out, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
