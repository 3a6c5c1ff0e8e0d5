package cmd

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/confkeep/confkeep/lib/config"
	"github.com/confkeep/confkeep/lib/merge"
	"github.com/confkeep/confkeep/lib/util"
)

func newMergeCommand() *cobra.Command {
	var beforeDir, afterDir, storeDir string
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "merge --before DIR --after DIR [--store DIR]",
		Short: "Merge one before/after tree pair into the store",
		Long: `Merge runs the three-way pass directly against explicit tree roots,
without running any application. Useful for recovery when a session's
work area survived, and for scripting. Ignore rules and the file format
come from the tool config; --store overrides the configured store root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !util.CheckDirExists(beforeDir) {
				return oops.Errorf("before root %s is not a directory", beforeDir)
			}
			if !util.CheckDirExists(afterDir) {
				return oops.Errorf("after root %s is not a directory", afterDir)
			}

			config.InitConfig()
			cfg := config.NewConfigFromViper()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if storeDir == "" {
				storeDir = cfg.Store.Dir
			}

			engine := merge.NewEngine(cfg.Ignore)
			report, err := merge.RunPass(engine, beforeDir, afterDir, storeDir, merge.PassOptions{
				Format:   cfg.Format.Format(),
				ShowDiff: showDiff,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderSummary(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&beforeDir, "before", "", "tree root holding the early snapshot")
	cmd.Flags().StringVar(&afterDir, "after", "", "tree root holding the final session state")
	cmd.Flags().StringVar(&storeDir, "store", "", "durable store root (default from config)")
	cmd.Flags().BoolVar(&showDiff, "show-diff", false,
		"include unified diffs of modified files in the summary")
	_ = cmd.MarkFlagRequired("before")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}
