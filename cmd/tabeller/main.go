// Command tabeller publishes the league-table feed for the club's table page.
//
// Typical use, every five minutes from cron or a CI schedule:
//
//	tabeller run --config tabeller.json5 --out public/data/tables.json
//
// Exit code 2 means extraction regressed and the published feed was left untouched.
package main

import "github.com/elmoro10/fagerborg-tabeller/internal/cli"

func main() {
	cli.Execute()
}
