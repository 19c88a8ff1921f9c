// Package export writes the output CSV tables. Every table is fully
// materialized and encoded in memory first, then written with a single
// WriteFile, so a file on disk is always complete for its inputs.
package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/3rfan/fpl-ai-recommender/internal/fpl"
	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// PlayerRow is one line of the player master table: identity plus the
// current point-in-time capture.
type PlayerRow struct {
	FPLID       int
	Name        string
	FullName    string
	TeamName    string
	TeamShort   string
	TeamFPLCode int
	Position    string
	Status      string
	PointInTime map[string]*float64
}

// WriteTeams writes the roster table, one row per team.
func WriteTeams(path string, teams []fpl.Team) error {
	records := [][]string{{"fpl_code", "name", "short_name"}}
	for _, t := range teams {
		records = append(records, []string{strconv.Itoa(t.ID), t.Name, t.ShortName})
	}
	return writeWhole(path, records)
}

// WritePlayers writes the player master table.
func WritePlayers(path string, players []PlayerRow) error {
	header := []string{"fpl_id", "name", "full_name", "team_name", "team_short", "team_fpl_code", "position", "status"}
	header = append(header, snapshot.PointInTimeFields...)

	records := [][]string{header}
	for _, p := range players {
		rec := []string{
			strconv.Itoa(p.FPLID),
			p.Name,
			p.FullName,
			p.TeamName,
			p.TeamShort,
			strconv.Itoa(p.TeamFPLCode),
			p.Position,
			p.Status,
		}
		for _, f := range snapshot.PointInTimeFields {
			rec = append(rec, formatNullable(p.PointInTime[f]))
		}
		records = append(records, rec)
	}
	return writeWhole(path, records)
}

// WriteGameweekStats writes the discrete stats table for one gameweek.
// The column set is the same whichever reconciliation path produced rows.
func WriteGameweekStats(path string, gw int, rows []snapshot.Row) error {
	header := []string{"fpl_id", "first_name", "second_name", "web_name", "gameweek", "status"}
	header = append(header, snapshot.PointInTimeFields...)
	header = append(header, snapshot.CumulativeFields...)

	records := [][]string{header}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.ID),
			r.FirstName,
			r.SecondName,
			r.WebName,
			strconv.Itoa(gw),
			r.Status,
		}
		for _, f := range snapshot.PointInTimeFields {
			rec = append(rec, formatNullable(r.PointInTime[f]))
		}
		for _, f := range snapshot.CumulativeFields {
			rec = append(rec, formatFloat(r.Cumulative[f]))
		}
		records = append(records, rec)
	}
	return writeWhole(path, records)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatNullable renders a missing point-in-time value as an empty cell.
func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func writeWhole(path string, records [][]string) error {
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
