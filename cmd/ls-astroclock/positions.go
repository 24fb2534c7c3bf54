package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/chart"
)

func positionsCmd(a *app) *cobra.Command {
	var at string
	var jd float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Print the chart for a moment",
		Long: `Print body longitudes, houses, retrograde flags, the angles and the
house cusps for a moment (default now) in the configured zodiac and frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTime(at, jd, cmd.Flags().Changed("jd"))
			if err != nil {
				return err
			}
			view, err := a.view(cmd.Context())
			if err != nil {
				return err
			}

			c := chart.Compute(view, t)
			w := cmd.OutOrStdout()
			if asJSON {
				return chart.ExportChart(c).WriteJSON(w)
			}
			chart.WriteTable(w, c, isTerminal(w))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "time (RFC3339, \"2006-01-02 15:04\" or a Julian Day)")
	cmd.Flags().Float64Var(&jd, "jd", 0, "Julian Day")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON")
	cmd.MarkFlagsMutuallyExclusive("at", "jd")
	return cmd
}
