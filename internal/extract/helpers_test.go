package extract

import (
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(config.DefaultHeuristics())
	require.NoError(t, err)
	return e
}

func mustDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func itoa(n int) string { return strconv.Itoa(n) }

func folded(headers ...string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = foldHeader(h)
	}
	return out
}

const norwegianTable = `<html><body>
<h1>Tabell</h1>
<table class="table">
  <thead>
    <tr><th>Plass</th><th>Lag</th><th>Kamper</th><th>V</th><th>U</th><th>T</th><th>Mål</th><th>Diff</th><th>Poeng</th></tr>
  </thead>
  <tbody>
    <tr>
      <td>1</td>
      <td><a href="/lag/1">Fagerborg</a> <span>(3)</span></td>
      <td>10</td><td>7</td><td>2</td><td>1</td><td>20 – 10</td><td>+10</td><td>23</td>
    </tr>
    <tr><td>2</td><td>Lyn 2</td><td>10</td><td>6</td><td>2</td><td>2</td><td>18:12</td><td></td><td>20</td></tr>
    <tr><td>Plass</td><td>Lag</td><td>Kamper</td><td>V</td><td>U</td><td>T</td><td>Mål</td><td>Diff</td><td>Poeng</td></tr>
    <tr><td>3</td><td>  </td><td>10</td><td>5</td><td>2</td><td>3</td><td>9-9</td><td>0</td><td>17</td></tr>
    <tr><td>4</td><td>Skeid</td><td>x</td><td>5</td><td>1</td><td>4</td><td>bad</td><td>?</td><td>16</td></tr>
  </tbody>
</table>
</body></html>`
