package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
)

func testFeed() *standings.Feed {
	feed := standings.NewFeed()
	feed.UpdatedAt = "2026-10-15 12:00:00"
	feed.A = &standings.Snapshot{
		FiksID: "100",
		Source: standings.SourceTable,
		Rows: []standings.Row{{
			Pos: "1", Team: "Fagerborg", Played: "10", Wins: "7", Draws: "2", Losses: "1",
			Goals: "20-10", Diff: "10", Points: "23",
			Form: []standings.Outcome{standings.Win, standings.Draw},
		}},
	}
	feed.B = &standings.Snapshot{
		FiksID:   "200",
		Source:   standings.SourceNone,
		Degraded: true,
		Unmapped: []string{"goals", "difference"},
		Rows:     []standings.Row{},
	}
	return feed
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, testFeed(), FormatText))

	out := buf.String()
	require.Contains(t, out, "Updated: 2026-10-15 12:00:00 UTC")
	require.Contains(t, out, "Competition A (fiksId 100, source table)")
	require.Contains(t, out, "Fagerborg")
	require.Contains(t, out, "W D")
	require.Contains(t, out, "Competition B (fiksId 200, source none)")
	require.Contains(t, out, "columns read by position: goals, difference")
	require.Contains(t, out, "No rows.")
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, testFeed(), FormatJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "2026-10-15 12:00:00", doc["updatedAt"])
	require.Len(t, doc["a"].(map[string]any)["rows"], 1)
	require.Empty(t, doc["b"].(map[string]any)["rows"])
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteOutput(&buf, testFeed(), OutputFormat("xml")))
}
