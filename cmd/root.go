package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tristanpoland/GCD/pkg/bootstrap"
	"github.com/tristanpoland/GCD/pkg/config"
	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/logging"
	"github.com/tristanpoland/GCD/pkg/ui"
)

var (
	cfgFile     string
	verbosity   int
	quiet       bool
	listFlag    bool
	interactive bool

	appConfig *config.Config
	logger    = logging.Discard()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gcd [pattern]",
	Short: "gcd - jump to git repositories by fuzzy name",
	Long: `gcd finds the git repository you mean from a short, possibly imprecise
name fragment and prints its path, so the shell wrapper can cd into it.

Repositories are discovered ahead of time with 'gcd index <dir>' and kept in
an index file. Matching is case-insensitive: exact names win, then prefixes,
then substrings, then scattered subsequences such as "awp" for
"awesome-project".

Examples:
  gcd index ~/src          # index every repository below ~/src
  gcd awp                  # print the best match for "awp"
  gcd --list awp           # show the ranking instead of picking
  gcd -i api               # choose among matches with fzf
  gcd install zsh          # add the cd wrapper to ~/.zshrc
  gcd -- index             # match a repository literally named "index"

Run 'gcd' without arguments to list the indexed repositories.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !interactive {
			return runAvailable(cmd)
		}
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		return runNavigate(cmd, pattern)
	},
}

// Execute adds all child commands to the root command and runs it. It
// returns the process exit code.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return gcderrors.ExitOK
	}
	if gcderrors.Is(err, ui.ErrCancelled) {
		return gcderrors.ExitFailure
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), gcderrors.FormatUserError(err))
	return gcderrors.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/gcd/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (-vv for debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")

	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "print ranked candidates instead of the best match")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick among candidates with fzf")
}

// initApp sets up logging and loads the configuration before any command
// runs.
func initApp(cmd *cobra.Command, _ []string) error {
	logger = logging.New(cmd.ErrOrStderr(), logging.LevelFromVerbosity(verbosity, quiet))
	slog.SetDefault(logger)

	cfg, err := bootstrap.InitConfig(cfgFile, logger)
	if err != nil {
		return err
	}
	appConfig = cfg

	// Flags win over log.level
	if verbosity == 0 && !quiet && cfg.Log.Level != "" {
		logger = logging.New(cmd.ErrOrStderr(), logging.LevelFromString(cfg.Log.Level))
		slog.SetDefault(logger)
	}
	return nil
}

// resetConfig clears the cached configuration and flag state.
// This is primarily used in tests to ensure each test starts fresh.
func resetConfig() {
	appConfig = nil
	cfgFile = ""
	verbosity = 0
	quiet = false
	listFlag = false
	interactive = false
	rebuildFlag = false
	printFlag = false
	listFormat = "plain"
	logger = logging.Discard()
	bootstrap.Reset()
	viper.Reset()
}
