// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"

	"github.com/ManuGH/kpai/internal/status"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Work with status dumps",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect PATH",
		Short: "Summarise a status dump (plain or zstd)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := status.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frame:     %d\n", r.Frame)
			fmt.Fprintf(out, "map:       %dx%d\n", r.Map.Width, r.Map.Height)
			fmt.Fprintf(out, "geovents:  %d\n", len(r.Geos))
			fmt.Fprintf(out, "friendly:  %d\n", len(r.Friends))
			fmt.Fprintf(out, "enemy:     %d\n", len(r.Foes))
			if len(r.Influence) > 0 {
				fmt.Fprintf(out, "influence: %dx%d\n", len(r.Influence[0]), len(r.Influence))
			} else {
				fmt.Fprintln(out, "influence: none")
			}
			return nil
		},
	})
	return cmd
}
