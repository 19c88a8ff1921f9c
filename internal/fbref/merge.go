package fbref

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RosterPlayer is the slice of the FPL player master needed for matching.
type RosterPlayer struct {
	FPLID    int
	Name     string // web name, e.g. "Haaland"
	FullName string // "Erling Haaland"
}

// MatchedRow is a scraped stat line joined to an FPL player id.
type MatchedRow struct {
	StatRow
	FPLID    int
	Gameweek int
}

// MatchPlayers joins scraped rows to FPL players by normalized name
// prefix: a roster player matches when their web name contains the first
// five characters of the scraped name, or their full name contains the
// first eight. Unmatched rows are dropped. The join is heuristic; exact
// id-level linkage does not exist between the two sources.
func MatchPlayers(rows []StatRow, roster []RosterPlayer, gw int) []MatchedRow {
	out := make([]MatchedRow, 0, len(rows))
	for _, row := range rows {
		name := strings.ToLower(row.Name)
		short := prefix(name, 5)
		long := prefix(name, 8)

		for _, p := range roster {
			if strings.Contains(strings.ToLower(p.Name), short) ||
				strings.Contains(strings.ToLower(p.FullName), long) {
				out = append(out, MatchedRow{StatRow: row, FPLID: p.FPLID, Gameweek: gw})
				break
			}
		}
	}
	return out
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// WriteStats writes the matched rows as a CSV table, whole-file in one
// step like every other output artifact.
func WriteStats(path string, rows []MatchedRow) error {
	records := [][]string{{
		"fpl_id", "player_name", "team", "gameweek",
		"minutes", "goals", "assists", "shots", "key_passes", "xg", "xa",
	}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.FPLID),
			r.Name,
			r.Team,
			strconv.Itoa(r.Gameweek),
			strconv.Itoa(r.Minutes),
			strconv.Itoa(r.Goals),
			strconv.Itoa(r.Assists),
			strconv.Itoa(r.Shots),
			strconv.Itoa(r.KeyPasses),
			strconv.FormatFloat(r.XG, 'f', 2, 64),
			strconv.FormatFloat(r.XA, 'f', 2, 64),
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
