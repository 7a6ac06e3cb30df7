package main

// Runs the extractor against a saved standings page (and optionally a results page) and
// prints what it reads. Handy when fotball.no changes markup:
//
//	go run ./scripts/extract-page.go page.html [results.html]

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/extract"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extract-page <standings.html> [results.html]")
		os.Exit(1)
	}

	ex, err := extract.New(config.DefaultHeuristics())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building extractor: %v\n", err)
		os.Exit(1)
	}

	page, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	res, err := ex.Standings(string(page))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting standings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("source=%s degraded=%v unmapped=%v rows=%d\n", res.Source, res.Degraded, res.Unmapped, len(res.Rows))

	rows := res.Rows
	if len(os.Args) > 2 {
		results, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		logos, _ := ex.Logos(string(results), "https://www.fotball.no/")
		matches, _ := ex.Matches(string(results))
		fmt.Printf("logos=%d matches=%d\n", logos.Len(), len(matches))

		rows = extract.ApplyLogos(rows, logos, config.DefaultHeuristics().Logos.FuzzyThreshold)
		rows = extract.DeriveForm(rows, matches, 5, true)
	}

	out, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding rows: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
