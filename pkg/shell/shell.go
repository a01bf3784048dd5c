// Package shell generates and installs the gcd wrapper function.
//
// The gcd binary cannot change the caller's working directory, so it prints
// the resolved path and a small shell function does the cd. Output that is
// not a directory (listings, config, errors) is passed through unchanged.
package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// Guard marks an installed wrapper in an rc file so installing twice is a
// no-op.
const Guard = "### GCD Integration"

// Shell identifies a supported shell.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	PowerShell Shell = "powershell"
)

// Supported lists the accepted shell names, aliases excluded.
var Supported = []Shell{Bash, Zsh, Fish, PowerShell}

// Parse resolves a shell name, accepting "ps" and "pwsh" for PowerShell.
func Parse(name string) (Shell, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "ps", "pwsh", "powershell":
		return PowerShell, nil
	default:
		return "", gcderrors.Newf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", name)
	}
}

// Script returns the wrapper function for sh.
func Script(sh Shell) string {
	switch sh {
	case Fish:
		return fishInit
	case PowerShell:
		return powershellInit
	default:
		return posixInit
	}
}

const posixInit = `gcd() {
    if [ "$#" -eq 0 ]; then
        command gcd
        return
    fi
    local output
    output="$(command gcd "$@")"
    local rc=$?
    if [ $rc -eq 0 ] && [ -n "$output" ] && [ -d "$output" ]; then
        cd "$output" || return 1
    else
        [ -n "$output" ] && printf '%s\n' "$output"
        return $rc
    fi
}
`

const fishInit = `function gcd --wraps=gcd --description 'Jump to an indexed repository'
    if test (count $argv) -eq 0
        command gcd
        return
    end
    set -l output (command gcd $argv)
    set -l code $status
    if test $code -eq 0 -a (count $output) -eq 1; and test -d "$output"
        cd $output
    else
        printf '%s\n' $output
        return $code
    end
end
`

const powershellInit = `function gcd {
    $bin = (Get-Command gcd -CommandType Application | Select-Object -First 1).Source
    if ($args.Count -eq 0) {
        & $bin
        return
    }
    $output = & $bin @args
    $code = $LASTEXITCODE
    if ($code -eq 0 -and $output -and (Test-Path -LiteralPath $output -PathType Container)) {
        Set-Location $output
    } else {
        if ($output) { Write-Output $output }
        $global:LASTEXITCODE = $code
    }
}
`

// RCPath returns the startup file the wrapper is installed into for sh,
// relative to home.
func RCPath(sh Shell, home string) string {
	switch sh {
	case Zsh:
		return filepath.Join(home, ".zshrc")
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	case PowerShell:
		if runtime.GOOS == "windows" {
			return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
		}
		return filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
	default:
		return filepath.Join(home, ".bashrc")
	}
}

// Install appends the guarded wrapper for sh to path, creating the file and
// its directory as needed. It reports false when the guard is already there.
func Install(sh Shell, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, gcderrors.Wrapf(err, "failed to read %s", path)
	}
	if strings.Contains(string(content), Guard) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, gcderrors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	var b strings.Builder
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + Guard + "\n")
	b.WriteString(Script(sh))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, gcderrors.Wrapf(err, "failed to open %s", path)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return false, gcderrors.Wrapf(err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return false, gcderrors.Wrapf(err, "failed to write %s", path)
	}
	return true, nil
}
