package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/index"
	"github.com/tristanpoland/GCD/pkg/match"
	"github.com/tristanpoland/GCD/pkg/ui"
)

// runNavigate resolves pattern and prints exactly one path, or the ranking
// with --list. Nothing is written to stdout when there is no match.
func runNavigate(cmd *cobra.Command, pattern string) error {
	x, err := loadIndex(appConfig)
	if err != nil {
		return err
	}

	matcher := match.NewMatcher(appConfig.Match.PathFallback)

	var candidates []match.Candidate
	if pattern == "" {
		// -i with no pattern picks among everything
		candidates = allCandidates(x)
	} else {
		candidates = matcher.Match(x, pattern)
	}
	logger.Debug("matched", "pattern", pattern, "candidates", len(candidates), "indexed", x.Len())

	if len(candidates) == 0 {
		return gcderrors.NewNoMatchError(pattern, x.Len())
	}

	out := cmd.OutOrStdout()
	switch {
	case listFlag:
		return printCandidates(out, candidates)
	case interactive:
		r, err := ui.SelectRepo(cmd.Context(), candidates)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, r.Path)
		return err
	default:
		_, err = fmt.Fprintln(out, candidates[0].Record.Path)
		return err
	}
}

// runAvailable lists the index, for a bare `gcd`.
func runAvailable(cmd *cobra.Command) error {
	x, err := loadIndex(appConfig)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if x.Len() == 0 {
		fmt.Fprintln(out, "No repositories indexed yet. Run 'gcd index <dir>' to add some.")
		return nil
	}

	fmt.Fprintln(out, "Available repositories:")
	for _, r := range x.Records() {
		fmt.Fprintf(out, "%s: %s\n", r.Name, r.Path)
	}
	return nil
}

func allCandidates(x *index.Index) []match.Candidate {
	records := x.Records()
	candidates := make([]match.Candidate, len(records))
	for i, r := range records {
		candidates[i] = match.Candidate{Record: r, Field: match.FieldName}
	}
	match.Rank(candidates)
	return candidates
}

func printCandidates(w io.Writer, candidates []match.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTIER\tFIELD\tNAME\tPATH")
	for _, c := range candidates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Score, c.Tier, c.Field, c.Record.Name, c.Record.Path)
	}
	return tw.Flush()
}
