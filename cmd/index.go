package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/GCD/pkg/discovery"
)

var rebuildFlag bool

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Scan a directory tree for git repositories",
	Long: `Scan a directory tree for git repositories and record them in the index.

Every directory holding a .git marker is indexed; its subdirectories are not
searched further, so nested checkouts are not indexed separately. Symbolic
links are never followed and directories named in discovery.exclude
(node_modules, target and vendor by default) are skipped.

By default the scan is merged into the index: repositories found are added
or refreshed, and repositories under dir whose .git is gone are dropped.
With --rebuild everything previously indexed under dir is replaced by the
result of this scan.

Examples:
  gcd index               # index the current directory
  gcd index ~/src
  gcd index --rebuild ~/src`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runIndexCommand(cmd, root)
	},
}

func init() {
	indexCmd.Flags().BoolVar(&rebuildFlag, "rebuild", false, "replace everything indexed under dir instead of merging")
	rootCmd.AddCommand(indexCmd)
}

func runIndexCommand(cmd *cobra.Command, root string) error {
	engine, err := newEngine(appConfig)
	if err != nil {
		return err
	}

	var result *discovery.Result
	if rebuildFlag {
		result, err = engine.Build(cmd.Context(), root)
	} else {
		result, err = engine.Update(cmd.Context(), root)
	}
	if err != nil {
		return err
	}

	logger.Info("scan finished", "root", result.Root, "scanned", result.Scanned, "duration", result.Duration)
	fmt.Fprintf(cmd.ErrOrStderr(), "Indexed %d repositories under %s (%d new, %d removed)\n",
		len(result.Added)+len(result.Refreshed), result.Root, len(result.Added), len(result.Removed))
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d unreadable directories\n", n)
	}
	return nil
}
