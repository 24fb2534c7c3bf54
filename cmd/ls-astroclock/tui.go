package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/state"
	"github.com/litescript/ls-astroclock/internal/ui"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive search prompt over a live chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			pctx, err := a.cfg.Context()
			if err != nil {
				return err
			}

			stateCfg := state.DefaultConfig()
			stateCfg.Context = pctx
			return ui.Run(state.NewManager(stateCfg), svc, a.searchOptions(0))
		},
	}
}
