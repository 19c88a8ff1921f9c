package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/3rfan/fpl-ai-recommender/internal/fbref"
)

var (
	playersCSV = flag.String("players", "data/players.csv", "FPL player master table (from cmd/scrape)")
	outPath    = flag.String("out", "data/player_metrics_fbref.csv", "Output CSV path")
	gameweek   = flag.Int("gw", 0, "Gameweek tag for the output rows")
	rps        = flag.Float64("rps", 0.5, "Requests per second (be polite)")
	burst      = flag.Int("burst", 1, "Burst tokens")
	timeout    = flag.Duration("timeout", 30*time.Second, "HTTP timeout")
	maxBody    = flag.Int64("max_body", 4<<20, "Max response body bytes")
	userAgent  = flag.String("ua", "fpl-ai-recommender/1.0 (fbref fetch)", "HTTP User-Agent")
)

func main() {
	flag.Parse()

	roster, err := readRoster(*playersCSV)
	if err != nil {
		die("read players: %v", err)
	}
	if len(roster) == 0 {
		die("player master %s is empty; run cmd/scrape first", *playersCSV)
	}

	client := fbref.NewPoliteClient(*rps, *burst, *timeout, *maxBody, *userAgent)
	page, code, err := client.Get(context.Background(), fbref.StandardStatsURL)
	if err != nil || code < 200 || code >= 300 {
		die("fetch %s: code=%d err=%v", fbref.StandardStatsURL, code, err)
	}

	table, err := fbref.ExtractTable(page, "stats_standard")
	if err != nil {
		die("extract stats table: %v", err)
	}
	rows := fbref.ParsePlayerTable(table)
	matched := fbref.MatchPlayers(rows, roster, *gameweek)

	if err := fbref.WriteStats(*outPath, matched); err != nil {
		die("write %s: %v", *outPath, err)
	}
	fmt.Printf("Scraped %d rows, matched %d players, wrote %s\n", len(rows), len(matched), *outPath)
}

// readRoster pulls id/name columns out of the players.csv master table.
func readRoster(path string) ([]fbref.RosterPlayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, want := range []string{"fpl_id", "name", "full_name"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, want)
		}
	}

	roster := make([]fbref.RosterPlayer, 0, len(records)-1)
	for _, rec := range records[1:] {
		id, err := strconv.Atoi(rec[col["fpl_id"]])
		if err != nil {
			continue
		}
		roster = append(roster, fbref.RosterPlayer{
			FPLID:    id,
			Name:     rec[col["name"]],
			FullName: rec[col["full_name"]],
		})
	}
	return roster, nil
}

func die(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
