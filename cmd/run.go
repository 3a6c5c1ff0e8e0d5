package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confkeep/confkeep/lib/config"
	"github.com/confkeep/confkeep/lib/session"
)

func newRunCommand() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "run [flags] -- <application> [args...]",
		Short: "Run the application and keep the config changes it was told to make",
		Long: `Run starts the wrapped application against a working copy of the stored
config tree, snapshots the copy shortly after startup, waits for the
application to exit, then merges user-made changes into the store.

The application argv comes from the arguments after --, or from
app.command in the tool config when none are given. Arguments containing
the placeholder token (app.config_placeholder, default {config}) get it
replaced by the working-tree path; without the token the path is
appended as the last argument.

Examples:
  confkeep run -- mychat --config-dir {config}
  confkeep run --show-diff -- mychat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			cfg := config.NewConfigFromViper()

			s, err := session.New(cfg, session.Options{
				Command:  args,
				ShowDiff: showDiff,
			})
			if err != nil {
				return err
			}

			report, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderSummary(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "show-diff", false,
		"include unified diffs of modified files in the summary and report")

	return cmd
}
