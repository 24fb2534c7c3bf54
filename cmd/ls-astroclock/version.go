package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-astroclock v%s\n", version.Version)
		},
	}
}
