package reconcile

import (
	"testing"

	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func row(id int, cumulative map[string]float64) snapshot.Row {
	r := snapshot.Row{
		ID:          id,
		WebName:     "Player",
		Status:      "a",
		PointInTime: make(map[string]*float64),
		Cumulative:  make(map[string]float64),
	}
	for _, f := range snapshot.PointInTimeFields {
		r.PointInTime[f] = nil
	}
	for _, f := range snapshot.CumulativeFields {
		r.Cumulative[f] = cumulative[f]
	}
	return r
}

func snap(gw int, rows ...snapshot.Row) *snapshot.Snapshot {
	return &snapshot.Snapshot{Gameweek: gw, Rows: rows}
}

func findRow(t *testing.T, rows []snapshot.Row, id int) snapshot.Row {
	t.Helper()
	for _, r := range rows {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("player %d missing from output", id)
	return snapshot.Row{}
}

// ---------------------------------------------------------------------------
// Discrete
// ---------------------------------------------------------------------------

func TestDiscrete_NonNegativeGrowth(t *testing.T) {
	cur := snap(3, row(1, map[string]float64{"minutes": 270, "goals_scored": 4}))
	prev := snap(2, row(1, map[string]float64{"minutes": 180, "goals_scored": 1}))

	out := Discrete(cur, prev)

	r := findRow(t, out, 1)
	if r.Cumulative["minutes"] != 90 {
		t.Errorf("minutes delta = %v, want 90", r.Cumulative["minutes"])
	}
	if r.Cumulative["goals_scored"] != 3 {
		t.Errorf("goals_scored delta = %v, want 3", r.Cumulative["goals_scored"])
	}
}

func TestDiscrete_PlayerAbsentFromPrevious(t *testing.T) {
	// mid-season signing: previous treated as zero across the board
	cur := snap(3, row(7, map[string]float64{"minutes": 85, "assists": 2}))
	prev := snap(2, row(1, map[string]float64{"minutes": 180}))

	out := Discrete(cur, prev)

	r := findRow(t, out, 7)
	if r.Cumulative["minutes"] != 85 {
		t.Errorf("minutes = %v, want 85", r.Cumulative["minutes"])
	}
	if r.Cumulative["assists"] != 2 {
		t.Errorf("assists = %v, want 2", r.Cumulative["assists"])
	}
}

func TestDiscrete_NegativeDeltaCorrection(t *testing.T) {
	// upstream revised the season total downward; the current value stands in
	cur := snap(3, row(1, map[string]float64{"bonus": 5}))
	prev := snap(2, row(1, map[string]float64{"bonus": 8}))

	out := Discrete(cur, prev)

	if got := findRow(t, out, 1).Cumulative["bonus"]; got != 5 {
		t.Errorf("bonus = %v, want 5 (current value on negative delta)", got)
	}
}

func TestDiscrete_NilPrevious(t *testing.T) {
	cur := snap(1, row(1, map[string]float64{"minutes": 90}))

	out := Discrete(cur, nil)

	if got := findRow(t, out, 1).Cumulative["minutes"]; got != 90 {
		t.Errorf("minutes = %v, want 90", got)
	}
}

func TestDiscrete_FullSchemaAndPassthrough(t *testing.T) {
	price := 7.5
	cur := snap(3, row(1, map[string]float64{"minutes": 90}))
	cur.Rows[0].PointInTime["price"] = &price
	prev := snap(2, row(1, nil))

	out := Discrete(cur, prev)

	r := findRow(t, out, 1)
	if len(r.Cumulative) != len(snapshot.CumulativeFields) {
		t.Errorf("cumulative fields = %d, want %d", len(r.Cumulative), len(snapshot.CumulativeFields))
	}
	if r.PointInTime["price"] == nil || *r.PointInTime["price"] != 7.5 {
		t.Errorf("price = %v, want 7.5 passed through", r.PointInTime["price"])
	}
	if r.Status != "a" {
		t.Errorf("Status = %q, want %q", r.Status, "a")
	}
}

func TestDiscrete_EveryCurrentPlayerPresent(t *testing.T) {
	cur := snap(3,
		row(1, map[string]float64{"minutes": 90}),
		row(2, map[string]float64{"minutes": 45}),
		row(3, nil),
	)
	prev := snap(2, row(2, map[string]float64{"minutes": 45}))

	out := Discrete(cur, prev)

	if len(out) != 3 {
		t.Fatalf("output rows = %d, want 3", len(out))
	}
	if got := findRow(t, out, 2).Cumulative["minutes"]; got != 0 {
		t.Errorf("player 2 minutes = %v, want 0 (no growth)", got)
	}
}
