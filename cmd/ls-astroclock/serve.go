package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/server"
	"github.com/litescript/ls-astroclock/internal/state"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts and searches as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
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
			h := server.NewHandler(server.Deps{
				Positions: svc,
				State:     state.NewManager(stateCfg),
				Search:    a.searchOptions(0),
				Log:       a.log,
			})
			return server.ListenAndServe(cmd.Context(), a.cfg.Server.Addr, h, a.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
