package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/logger"
	"github.com/elmoro10/fagerborg-tabeller/internal/scraper"
	"github.com/elmoro10/fagerborg-tabeller/internal/standings"
	"github.com/elmoro10/fagerborg-tabeller/internal/storage"
)

const (
	tableURL   = "https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=%s"
	matchesURL = "https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=%s"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", name))
	require.NoError(t, err)
	return string(data)
}

// fakeFetcher serves pages by URL and fails for anything else.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return "", crerr.Mark(crerr.Newf("fetching %s: unexpected status code: 404", url), scraper.ErrFetchFailure)
	}
	return page, nil
}

func testConfig() config.Config {
	cfg := config.Default().WithFiksIDs("100", "200")
	cfg.TableURL = tableURL
	cfg.MatchesURL = matchesURL
	return cfg
}

func pagesFor(t *testing.T, tableA, tableB string) map[string]string {
	results := fixture(t, "terminliste.html")
	pages := map[string]string{
		"https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=100": results,
		"https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=200": results,
	}
	if tableA != "" {
		pages["https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=100"] = tableA
	}
	if tableB != "" {
		pages["https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=200"] = tableB
	}
	return pages
}

func newTestRunner(t *testing.T, fetcher Fetcher, path string) *Runner {
	t.Helper()
	store, err := storage.New(path)
	require.NoError(t, err)

	r, err := New(testConfig(), fetcher, store)
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2026, 10, 15, 14, 5, 9, 0, time.FixedZone("CEST", 2*60*60)) }
	return r
}

func wantRows() []standings.Row {
	logo := func(id string) string { return "https://images.fotball.no/clublogos/" + id + ".png" }
	return []standings.Row{
		{
			Pos: "1", Team: "Fagerborg", Logo: logo("1001"),
			Played: "10", Wins: "7", Draws: "2", Losses: "1", Goals: "20-10", Diff: "10", Points: "23",
			Form: []standings.Outcome{standings.Loss, standings.Draw, standings.Win},
		},
		{
			Pos: "2", Team: "Skeid 2", Logo: logo("1002"),
			Played: "10", Wins: "6", Draws: "2", Losses: "2", Goals: "18-12", Diff: "6", Points: "20",
			Form: []standings.Outcome{standings.Win, standings.Loss, standings.Draw},
		},
		{
			Pos: "3", Team: "Lyn 2", Logo: "https://www.fotball.no/clublogos/1003.png",
			Played: "10", Wins: "5", Draws: "1", Losses: "4", Goals: "14-15", Diff: "-1", Points: "16",
			Form: []standings.Outcome{standings.Win, standings.Loss},
		},
		{
			Pos: "4", Team: "KFUM 2", Logo: logo("1004"),
			Played: "10", Wins: "0", Draws: "1", Losses: "9", Goals: "4-19", Diff: "-15", Points: "1",
			Form: []standings.Outcome{},
		},
	}
}

func TestRun_Publishes(t *testing.T) {
	logger.ResetMetrics()
	path := filepath.Join(t.TempDir(), "data", "tables.json")
	fetcher := &fakeFetcher{pages: pagesFor(t, fixture(t, "tabell.html"), fixture(t, "tabell_tekst.html"))}
	r := newTestRunner(t, fetcher, path)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Written)

	// competitions are processed one after another, table page first
	require.Equal(t, []string{
		"https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=100",
		"https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=100",
		"https://www.fotball.no/fotballdata/turnering/tabell/?fiksId=200",
		"https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=200",
	}, fetcher.calls)

	store, err := storage.New(path)
	require.NoError(t, err)
	feed := store.Load()

	require.Equal(t, "2026-10-15 12:05:09", feed.UpdatedAt)
	require.Equal(t, "100", feed.A.FiksID)
	require.Equal(t, standings.SourceTable, feed.A.Source)
	require.False(t, feed.A.Degraded)
	require.Equal(t, "200", feed.B.FiksID)
	require.Equal(t, standings.SourceText, feed.B.Source)

	if diff := cmp.Diff(wantRows(), feed.A.Rows); diff != "" {
		t.Errorf("competition a rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRows(), feed.B.Rows); diff != "" {
		t.Errorf("competition b rows (-want +got):\n%s", diff)
	}

	counters := logger.GetMetricsSnapshot()["counters"].(map[string]int64)
	require.Equal(t, int64(1), counters["extract.text_fallback"])

	require.Len(t, report.Changes["a"].Added, 4)
}

func TestRun_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	pages := pagesFor(t, fixture(t, "tabell.html"), fixture(t, "tabell.html"))

	first, err := newTestRunner(t, &fakeFetcher{pages: pages}, path).Run(context.Background())
	require.NoError(t, err)
	second, err := newTestRunner(t, &fakeFetcher{pages: pages}, path).Run(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(first.Feed, second.Feed); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	require.False(t, second.Changes["a"].Changed())
	require.Zero(t, second.Changes["b"].Delta)
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	pages := pagesFor(t, fixture(t, "tabell.html"), fixture(t, "tabell.html"))
	delete(pages, "https://www.fotball.no/fotballdata/turnering/terminliste/?fiksId=200")

	_, err := newTestRunner(t, &fakeFetcher{pages: pages}, path).Run(context.Background())
	require.Error(t, err)
	require.True(t, crerr.Is(err, scraper.ErrFetchFailure))
	require.Contains(t, err.Error(), "competition b")

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file may be written")
}

func TestRun_GuardRefusesRegression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	table := fixture(t, "tabell.html")

	_, err := newTestRunner(t, &fakeFetcher{pages: pagesFor(t, table, table)}, path).Run(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	broken := pagesFor(t, "<html><body><p>Tabellen er midlertidig utilgjengelig</p></body></html>", table)
	report, err := newTestRunner(t, &fakeFetcher{pages: broken}, path).Run(context.Background())

	require.Error(t, err)
	require.True(t, crerr.Is(err, storage.ErrExtractionRegression))
	require.False(t, report.Written)
	require.True(t, report.Feed.A.Empty())
	require.Equal(t, -4, report.Changes["a"].Delta)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after), "previous feed must be left untouched")
}

func TestRun_GuardRefusesEmptyFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	empty := "<html><body></body></html>"

	_, err := newTestRunner(t, &fakeFetcher{pages: pagesFor(t, empty, empty)}, path).Run(context.Background())
	require.Error(t, err)
	require.True(t, crerr.Is(err, storage.ErrEmptyFeed))

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestNew_InvalidConfig(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "tables.json"))
	require.NoError(t, err)

	_, err = New(config.Default(), &fakeFetcher{}, store)
	require.Error(t, err)
}

func TestRun_OverHTTP(t *testing.T) {
	table := fixture(t, "tabell.html")
	results := fixture(t, "terminliste.html")

	mux := http.NewServeMux()
	mux.HandleFunc("/tabell/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(table))
	})
	mux.HandleFunc("/terminliste/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(results))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig()
	cfg.TableURL = server.URL + "/tabell/?fiksId=%s"
	cfg.MatchesURL = server.URL + "/terminliste/?fiksId=%s"

	store, err := storage.New(filepath.Join(t.TempDir(), "tables.json"))
	require.NoError(t, err)
	r, err := New(cfg, scraper.New(cfg.UserAgent, cfg.FetchTimeout()), store)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Written)
	require.Equal(t, 4, store.Load().A.Len())
	require.Equal(t, server.URL+"/clublogos/1003.png", report.Feed.A.Rows[2].Logo)
}
