package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
	"golang.org/x/term"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
	"github.com/tristanpoland/GCD/pkg/index"
)

var listFormat string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the indexed repositories",
	Long: `Print every indexed repository, sorted by path.

Formats:
  plain  name and path; aligned columns on a terminal, tab-separated otherwise
  json   array of {path, name, last_seen}
  yaml   same fields as json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListCommand(cmd, listFormat)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "plain", "output format: plain, json or yaml")
	rootCmd.AddCommand(listCmd)
}

// listEntry is the serialized form of one record.
type listEntry struct {
	Path     string     `json:"path" yaml:"path"`
	Name     string     `json:"name" yaml:"name"`
	LastSeen *time.Time `json:"last_seen,omitempty" yaml:"last_seen,omitempty"`
}

func toEntries(records []index.Record) []listEntry {
	entries := make([]listEntry, len(records))
	for i, r := range records {
		entries[i] = listEntry{Path: r.Path, Name: r.Name}
		if !r.LastSeen.IsZero() {
			seen := r.LastSeen.UTC()
			entries[i].LastSeen = &seen
		}
	}
	return entries
}

func runListCommand(cmd *cobra.Command, format string) error {
	x, err := loadIndex(appConfig)
	if err != nil {
		return err
	}
	records := x.Records()
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "plain", "":
		return writePlain(out, records, terminalWidth(out))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(toEntries(records))
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(toEntries(records)); err != nil {
			return gcderrors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()
	default:
		return gcderrors.Newf("unknown format %q (supported: plain, json, yaml)", format)
	}
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// writePlain prints name and path per line. With a known width the names
// are padded into a column; otherwise the output is tab-separated for
// scripts.
func writePlain(w io.Writer, records []index.Record, width int) error {
	if width <= 0 {
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Path); err != nil {
				return err
			}
		}
		return nil
	}

	col := 0
	for _, r := range records {
		col = max(col, len(r.Name))
	}
	// Keep at least half the line for the path
	col = min(col, width/2)

	for _, r := range records {
		name := r.Name
		if len(name) > col {
			name = name[:max(col-1, 0)] + "…"
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", col, name, r.Path); err != nil {
			return err
		}
	}
	return nil
}
