package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/horizons"
	"github.com/litescript/ls-astroclock/internal/position"
)

func fetchCmd(a *app) *cobra.Command {
	var start, stop, step string
	var elements bool

	cmd := &cobra.Command{
		Use:   "fetch <body> <out>",
		Short: "Download a table for a body from the JPL Horizons API",
		Example: `  ls-astroclock fetch moon moon1.lng --start 2020-01-01 --stop 2030-01-01 --step "12 h"
  ls-astroclock fetch ceres ceres.elem --elements --start 2000-01-01 --stop 2050-01-01 --step "10 d"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := position.ParseBody(args[0])
			if err != nil {
				return err
			}
			t0, err := astro.ParseJD(start)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			t1, err := astro.ParseJD(stop)
			if err != nil {
				return fmt.Errorf("stop: %w", err)
			}

			r := horizons.Range{Start: astro.Time(t0), Stop: astro.Time(t1), Step: step}
			client := horizons.NewClient(a.log)
			var seg ephem.Segment
			if elements {
				seg, err = client.Elements(cmd.Context(), b, r)
			} else {
				seg, err = client.Observer(cmd.Context(), b, r)
			}
			if err != nil {
				return err
			}
			if err := writeTable(args[1], seg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples, %s to %s\n",
				args[1], seg.Len(), formatTime(seg.T0), formatTime(seg.T1))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first sample time")
	cmd.Flags().StringVar(&stop, "stop", "", "last sample time")
	cmd.Flags().StringVar(&step, "step", horizons.DefaultStep, "Horizons step size, e.g. \"1 d\" or \"12 h\"")
	cmd.Flags().BoolVar(&elements, "elements", false, "fetch heliocentric osculating elements")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("stop")
	return cmd
}
