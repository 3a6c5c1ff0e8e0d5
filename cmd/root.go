package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/confkeep/confkeep/lib/config"
	"github.com/confkeep/confkeep/lib/session"
	"github.com/confkeep/confkeep/lib/util"
)

// Exit codes returned by Execute. Scripts key off these: whoever drives
// confkeep needs to tell "the app quit before anything could be kept"
// apart from real failures.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitTooFast = 2
)

// NewRootCommand builds the confkeep command tree. Build metadata comes in
// from main, where the linker injects it.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confkeep",
		Short: "Keep user config changes made inside application sessions",
		Long: `confkeep wraps an interactive application, snapshots its config tree
shortly after startup, and folds the changes the user made during the
session back into a durable store. Rewrites the application performs on
its own before the snapshot never reach the store, so machine noise
stays out and user edits stay in.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Checked here so a mistyped --config fails with a message
			// instead of dying inside the config loader.
			if config.CfgFile != "" && !util.CheckFileExists(config.CfgFile) {
				return oops.Errorf("config file %s does not exist", config.CfgFile)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "",
		"tool config file (default $HOME/.confkeep/config.yaml)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// Execute runs the command tree and maps the outcome to an exit code.
func Execute(version, commit, date string) int {
	if err := NewRootCommand(version, commit, date).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "confkeep: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	if errors.Is(err, session.ErrTooFast) {
		return ExitTooFast
	}
	return ExitFailure
}
