package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/event"
	"github.com/litescript/ls-astroclock/internal/search"
)

func frequencyCmd(a *app) *cobra.Command {
	var from, to string
	var samples int
	var orb float64

	cmd := &cobra.Command{
		Use:   "frequency <query>",
		Short: "Estimate how often a query holds over a span",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 1 {
				return fmt.Errorf("samples must be at least 1")
			}
			if !(orb > 0) {
				return fmt.Errorf("orb must be positive")
			}
			ev, err := parseQuery(cmd.ErrOrStderr(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			low, err := a.resolveTime(from, 0, false)
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			high, err := a.resolveTime(to, 0, false)
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			if !(high > low) {
				return fmt.Errorf("--to must be after --from")
			}
			view, err := a.view(cmd.Context())
			if err != nil {
				return err
			}

			f := search.Frequency(event.Bind(ev, view), low, high, samples, astro.DegToRad(orb))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.4f (%.2f%% of %d samples)\n", ev, f, f*100, samples)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start of the span")
	cmd.Flags().StringVar(&to, "to", "", "end of the span")
	cmd.Flags().IntVar(&samples, "samples", 10000, "number of random samples")
	cmd.Flags().Float64Var(&orb, "orb", 360, "count only samples within this many degrees of exact")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}
