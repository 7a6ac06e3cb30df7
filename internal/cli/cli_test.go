package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/elmoro10/fagerborg-tabeller/internal/scraper"
	"github.com/elmoro10/fagerborg-tabeller/internal/storage"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitError},
		{"fetch failure", crerr.Mark(errors.New("timeout"), scraper.ErrFetchFailure), ExitError},
		{"regression", crerr.Wrap(crerr.Mark(errors.New("a emptied"), storage.ErrExtractionRegression), "competition a"), ExitRefused},
		{"empty feed", crerr.WithStack(storage.ErrEmptyFeed), ExitRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", name))
	require.NoError(t, err)
	return data
}

// fixtureServer serves the standings fixture for tabell and the results fixture for
// terminliste. Setting *table to nil makes the standings page empty.
func fixtureServer(t *testing.T, table *[]byte) *httptest.Server {
	t.Helper()
	results := readFixture(t, "terminliste.html")

	mux := http.NewServeMux()
	mux.HandleFunc("/tabell/", func(w http.ResponseWriter, r *http.Request) {
		if *table == nil {
			_, _ = w.Write([]byte("<html><body></body></html>"))
			return
		}
		_, _ = w.Write(*table)
	})
	mux.HandleFunc("/terminliste/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(results)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "tabeller.json5")
	body := fmt.Sprintf(`{
  competitions: [
    {key: "a", fiksId: "100", name: "A-lag"},
    {key: "b", fiksId: "200", name: "B-lag"},
  ],
  tableURL: "%[1]s/tabell/?fiksId=%%s",
  matchesURL: "%[1]s/terminliste/?fiksId=%%s",
  timeout: "5s",
}`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_PublishAndShow(t *testing.T) {
	table := readFixture(t, "tabell.html")
	server := fixtureServer(t, &table)

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	out := filepath.Join(dir, "public", "tables.json")

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"run", "--config", cfgPath, "--out", out}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	require.Contains(t, stderr.String(), `"message":"published feed"`)

	stdout.Reset()
	code = Run(context.Background(), []string{"show", "--file", out}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout.String(), "Competition A (fiksId 100, source table)")
	require.Contains(t, stdout.String(), "Fagerborg")
	require.Contains(t, stdout.String(), "L D W")

	// the table disappears upstream: the published feed must survive
	before, err := os.ReadFile(out)
	require.NoError(t, err)
	table = nil

	stderr.Reset()
	code = Run(context.Background(), []string{"run", "--config", cfgPath, "--out", out}, &stdout, &stderr)
	require.Equal(t, ExitRefused, code)
	require.Contains(t, stderr.String(), "refusing to publish feed")

	after, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestRun_FiksFlagsOverrideConfig(t *testing.T) {
	table := readFixture(t, "tabell.html")
	server := fixtureServer(t, &table)

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	out := filepath.Join(dir, "tables.json")

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"run", "--config", cfgPath, "--out", out, "--fiks-b", "999"}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())

	feed, err := storage.Read(out)
	require.NoError(t, err)
	require.Equal(t, "100", feed.A.FiksID)
	require.Equal(t, "999", feed.B.FiksID)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "explicit config missing",
			args:    []string{"run", "--config", filepath.Join(dir, "missing.json5")},
			wantErr: "missing.json5",
		},
		{
			name:    "no fiksIds",
			args:    []string{"run", "--config", filepath.Join(dir, "tabeller.json5"), "--out", filepath.Join(dir, "t.json")},
			wantErr: "FiksID",
		},
		{
			name:    "show missing feed",
			args:    []string{"show", "--file", filepath.Join(dir, "nope.json")},
			wantErr: "reading feed",
		},
		{
			name:    "show bad format",
			args:    []string{"show", "--format", "xml"},
			wantErr: "invalid format",
		},
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tabeller.json5"), []byte(`{timeout: "3s"}`), 0o644))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(context.Background(), tt.args, &stdout, &stderr)
			require.Equal(t, ExitError, code)
			require.Contains(t, stderr.String(), tt.wantErr)
		})
	}
}
