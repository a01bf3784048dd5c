package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop indexed repositories that no longer exist",
	Long: `Drop every indexed repository whose directory no longer holds a .git
marker, wherever it is. Unlike 'gcd index', nothing is scanned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPruneCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPruneCommand(cmd *cobra.Command) error {
	engine, err := newEngine(appConfig)
	if err != nil {
		return err
	}

	result, err := engine.Prune(cmd.Context())
	if err != nil {
		return err
	}

	for _, path := range result.Removed {
		logger.Info("pruned", "path", path)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d of %d repositories\n", len(result.Removed), result.Scanned)
	return nil
}
