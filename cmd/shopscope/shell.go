package main

import (
	"github.com/spf13/cobra"

	"github.com/IshaanNene/ShopScope/internal/repl"
)

// shellCmd creates the "shell" subcommand.
func shellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open a page interactively and run analyzers on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return repl.New(s.Client, cmd.InOrStdin(), cmd.OutOrStdout(), s.logger).Run(cmd.Context())
		},
	}

	addOutputFlags(cmd)

	return cmd
}
