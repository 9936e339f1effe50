// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"

	"github.com/ManuGH/kpai/internal/influence"
	"github.com/spf13/cobra"
)

func newInfluenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "influence",
		Short: "Manage influence tables",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init PATH",
			Short: "Write the default influence table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := influence.WriteDefault(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "check PATH",
			Short: "Validate an influence table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := influence.Load(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%d classes)\n", args[0], len(t))
				return nil
			},
		},
	)
	return cmd
}
