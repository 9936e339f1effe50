// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPolicyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Evaluate the policy calculators",
	}
	cmd.AddCommand(newPolicyEvalCmd(opts))
	return cmd
}

func newPolicyEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		geospots, width, height, frame int
		distance, influence            float64
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run every calculator of the selected profile once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.load()
			if err != nil {
				return err
			}
			calc := store.Calculator()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "profile: %s\n", calc.Profile().Name)
			fmt.Fprintf(out, "wanted constructors: %d\n", calc.WantedConstructors(geospots, width, height))
			fmt.Fprintf(out, "build spot priority: %d\n", calc.BuildSpotPriority(distance, influence, width, height))
			fmt.Fprintf(out, "builder retreat timeout: %d\n", calc.BuilderRetreatTimeout(frame))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&geospots, "geospots", 0, "number of geo spots on the map")
	f.IntVar(&width, "width", 256, "map width in squares")
	f.IntVar(&height, "height", 256, "map height in squares")
	f.Float64Var(&distance, "distance", 0, "distance to the build spot in elmos")
	f.Float64Var(&influence, "influence", 0, "influence at the build spot")
	f.IntVar(&frame, "frame", 0, "current frame for the retreat timeout")
	return cmd
}
