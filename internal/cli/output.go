package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", crerr.Newf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// WriteOutput writes the feed in the specified format
func WriteOutput(w io.Writer, feed *standings.Feed, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, feed)
	case FormatText:
		return writeText(w, feed)
	default:
		return crerr.Newf("unknown format: %s", format)
	}
}

// writeJSON outputs the feed exactly as the display page reads it
func writeJSON(w io.Writer, feed *standings.Feed) error {
	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(feed)
}

// writeText renders one table per competition
func writeText(w io.Writer, feed *standings.Feed) error {
	fmt.Fprintf(w, "Updated: %s UTC\n", orDash(feed.UpdatedAt))

	for _, key := range standings.Keys {
		snap := feed.Get(key)
		fmt.Fprintf(w, "\nCompetition %s (fiksId %s, source %s)\n",
			strings.ToUpper(key), orDash(snap.FiksID), orDash(string(snap.Source)))
		if snap.Degraded {
			note := "extracted in degraded mode"
			if len(snap.Unmapped) > 0 {
				note += "; columns read by position: " + strings.Join(snap.Unmapped, ", ")
			}
			fmt.Fprintf(w, "Warning: %s\n", note)
		}

		if snap.Empty() {
			fmt.Fprintln(w, "No rows.")
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"#", "Team", "P", "W", "D", "L", "Goals", "Diff", "Pts", "Form"})
		for _, r := range snap.Rows {
			t.AppendRow(table.Row{r.Pos, r.Team, r.Played, r.Wins, r.Draws, r.Losses, r.Goals, r.Diff, r.Points, formString(r.Form)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	}
	return nil
}

func formString(form []standings.Outcome) string {
	parts := make([]string, len(form))
	for i, o := range form {
		parts[i] = string(o)
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
