package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/index"
	"github.com/tristanpoland/GCD/pkg/match"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoRepos is returned when there are no repositories to select from
	ErrNoRepos = errors.New("no repositories to select from")
)

// SelectRepo prompts the user to pick one of the ranked candidates using
// fzf. The list is shown in ranking order so the resolver's choice is on
// top.
func SelectRepo(ctx context.Context, candidates []match.Candidate) (index.Record, error) {
	if len(candidates) == 0 {
		return index.Record{}, ErrNoRepos
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return index.Record{}, gcderrors.Wrap(err, "fzf not found in PATH")
	}

	// --delimiter=\t: Name <tab> Path, both searchable
	// #nosec G204 - fzf binary is looked up in PATH, no user-controlled arguments are passed directly
	cmd := exec.CommandContext(ctx, fzfPath,
		"--height=40%",
		"--layout=reverse",
		"--delimiter=\t",
		"--with-nth=1,2",
		"--no-sort",
		"--cycle",
	)
	cmd.Stdin = formatChoices(candidates)
	cmd.Stderr = os.Stderr // fzf uses stderr for UI rendering
	var output bytes.Buffer
	cmd.Stdout = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// 130 on ESC / Ctrl-C, 1 when the filter left nothing to pick
			if code := exitErr.ExitCode(); code == 130 || code == 1 {
				return index.Record{}, ErrCancelled
			}
		}
		return index.Record{}, gcderrors.Wrap(err, "fzf failed")
	}

	return parseSelection(output.String(), candidates)
}

func formatChoices(candidates []match.Candidate) *bytes.Buffer {
	var input bytes.Buffer
	for _, c := range candidates {
		fmt.Fprintf(&input, "%s\t%s\n", c.Record.Name, c.Record.Path)
	}
	return &input
}

func parseSelection(out string, candidates []match.Candidate) (index.Record, error) {
	line := strings.TrimRight(out, "\r\n")
	if strings.TrimSpace(line) == "" {
		return index.Record{}, ErrCancelled
	}

	_, path, ok := strings.Cut(line, "\t")
	if !ok {
		return index.Record{}, gcderrors.Newf("invalid selection output: %q", line)
	}

	for _, c := range candidates {
		if c.Record.Path == path {
			return c.Record, nil
		}
	}
	return index.Record{}, gcderrors.Newf("selected path %q not in candidate list", path)
}
