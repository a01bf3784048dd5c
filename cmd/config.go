package cmd

import (
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect after defaults, the config file and
GCD_* environment variables are combined, in config-file syntax.

Settings:
  index.path             where the index is stored
  index.backend          json (default) or sqlite
  discovery.exclude      directory names never scanned
  discovery.markers      names that mark a repository root (default .git)
  discovery.max_depth    scan depth limit, 0 for none
  match.path_fallback    match full paths when no name matches

Example override:
  GCD_INDEX_BACKEND=sqlite gcd index ~/src`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfigCommand(cmd *cobra.Command) error {
	data, err := appConfig.Render()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
