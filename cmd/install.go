package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/shell"
)

var printFlag bool

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install [shell]",
	Short: "Install the cd wrapper for your shell",
	Long: `Install the gcd shell function that changes into the resolved directory.

The function is appended once to the shell's startup file, under a
"### GCD Integration" marker; running install again changes nothing.

Shells and files:
  bash        ~/.bashrc (default)
  zsh         ~/.zshrc
  fish        ~/.config/fish/config.fish
  powershell  the PowerShell profile (also accepted as ps or pwsh)

Examples:
  gcd install zsh
  gcd install fish --print | source`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "bash"
		if len(args) == 1 {
			name = args[0]
		}
		return runInstallCommand(cmd, name)
	},
}

func init() {
	installCmd.Flags().BoolVar(&printFlag, "print", false, "write the wrapper to stdout instead of installing it")
	rootCmd.AddCommand(installCmd)
}

func runInstallCommand(cmd *cobra.Command, name string) error {
	sh, err := shell.Parse(name)
	if err != nil {
		return err
	}

	if printFlag {
		_, err := fmt.Fprint(cmd.OutOrStdout(), shell.Script(sh))
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return gcderrors.Wrap(err, "could not determine home directory")
	}
	rc := shell.RCPath(sh, home)

	installed, err := shell.Install(sh, rc)
	if err != nil {
		return err
	}
	if !installed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Shell integration for %s is already in %s\n", sh, rc)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Shell integration installed for %s in %s\nRestart your shell or source the file to use it.\n", sh, rc)
	return nil
}
