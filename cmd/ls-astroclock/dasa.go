package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/dasa"
)

func dasaCmd(a *app) *cobra.Command {
	var at string
	var jd float64
	var depth int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dasa",
		Short: "Print Vimshottari dasa periods for a birth time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := a.resolveTime(at, jd, cmd.Flags().Changed("jd"))
			if err != nil {
				return err
			}
			view, err := a.view(cmd.Context())
			if err != nil {
				return err
			}
			periods, err := dasa.FromView(view, birth, depth)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(periods)
			}
			return dasa.Write(w, periods)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "birth time (default now)")
	cmd.Flags().Float64Var(&jd, "jd", 0, "birth time as a Julian Day")
	cmd.Flags().IntVar(&depth, "depth", dasa.DefaultDepth, "levels of sub-periods (1-5)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON")
	cmd.MarkFlagsMutuallyExclusive("at", "jd")
	return cmd
}
