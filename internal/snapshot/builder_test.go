package snapshot

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Number
// ---------------------------------------------------------------------------

func TestNumber_Forms(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(3), 3, true},
		{7, 7, true},
		{"2.35", 2.35, true},
		{"", 0, false},
		{"n/a", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, c := range cases {
		got, ok := Number(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Number(%v) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

func element(id int, fields map[string]any) map[string]any {
	el := map[string]any{
		"id":          float64(id),
		"first_name":  "First",
		"second_name": "Second",
		"web_name":    "Web",
		"status":      "a",
	}
	for k, v := range fields {
		el[k] = v
	}
	return el
}

func TestBuild_FullSchemaAlways(t *testing.T) {
	// a record missing every stat field still yields the full schema
	snap := Build([]map[string]any{element(1, nil)}, 3)

	if snap.Gameweek != 3 {
		t.Errorf("Gameweek = %d, want 3", snap.Gameweek)
	}
	if len(snap.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(snap.Rows))
	}

	row := snap.Rows[0]
	if len(row.Cumulative) != len(CumulativeFields) {
		t.Errorf("cumulative fields = %d, want %d", len(row.Cumulative), len(CumulativeFields))
	}
	for _, f := range CumulativeFields {
		if row.Cumulative[f] != 0 {
			t.Errorf("missing cumulative %q = %v, want 0", f, row.Cumulative[f])
		}
	}
	if len(row.PointInTime) != len(PointInTimeFields) {
		t.Errorf("point-in-time fields = %d, want %d", len(row.PointInTime), len(PointInTimeFields))
	}
	for _, f := range PointInTimeFields {
		if row.PointInTime[f] != nil {
			t.Errorf("missing point-in-time %q = %v, want nil", f, *row.PointInTime[f])
		}
	}
}

func TestBuild_CoercesTextNumbers(t *testing.T) {
	snap := Build([]map[string]any{element(1, map[string]any{
		"minutes":        float64(270),
		"expected_goals": "2.35", // the API serializes xG as text
		"goals_scored":   "bad",
	})}, 1)

	row := snap.Rows[0]
	if row.Cumulative["minutes"] != 270 {
		t.Errorf("minutes = %v, want 270", row.Cumulative["minutes"])
	}
	if row.Cumulative["expected_goals"] != 2.35 {
		t.Errorf("expected_goals = %v, want 2.35", row.Cumulative["expected_goals"])
	}
	if row.Cumulative["goals_scored"] != 0 {
		t.Errorf("unparseable goals_scored = %v, want 0", row.Cumulative["goals_scored"])
	}
}

func TestBuild_PointInTime(t *testing.T) {
	snap := Build([]map[string]any{element(1, map[string]any{
		"now_cost":            float64(125),
		"selected_by_percent": "45.3",
		"form":                "not a number",
	})}, 1)

	row := snap.Rows[0]
	if row.PointInTime["price"] == nil || *row.PointInTime["price"] != 12.5 {
		t.Errorf("price = %v, want 12.5", row.PointInTime["price"])
	}
	if row.PointInTime["selected_by_percent"] == nil || *row.PointInTime["selected_by_percent"] != 45.3 {
		t.Errorf("selected_by_percent = %v, want 45.3", row.PointInTime["selected_by_percent"])
	}
	// unparseable point-in-time stays null, not zero
	if row.PointInTime["form"] != nil {
		t.Errorf("form = %v, want nil", *row.PointInTime["form"])
	}
	if row.Status != "a" {
		t.Errorf("Status = %q, want %q", row.Status, "a")
	}
}

func TestBuild_DropsRecordsWithoutID(t *testing.T) {
	snap := Build([]map[string]any{
		{"web_name": "NoID"},
		element(2, nil),
	}, 1)

	if len(snap.Rows) != 1 || snap.Rows[0].ID != 2 {
		t.Fatalf("rows = %v, want only player 2", snap.Rows)
	}
}

func TestBuild_SortsAndStampsRun(t *testing.T) {
	snap := Build([]map[string]any{element(9, nil), element(2, nil), element(5, nil)}, 1)

	for i := 1; i < len(snap.Rows); i++ {
		if snap.Rows[i].ID < snap.Rows[i-1].ID {
			t.Errorf("rows not sorted by id at %d", i)
		}
	}
	if snap.RunID == "" {
		t.Error("RunID is empty")
	}
	if snap.GeneratedAtUTC == "" {
		t.Error("GeneratedAtUTC is empty")
	}
}

func TestHistoryFields_ExcludesDreamteam(t *testing.T) {
	for _, f := range HistoryFields {
		if f == "dreamteam_count" {
			t.Error("dreamteam_count has no per-match equivalent and must not be history-derivable")
		}
	}
	if len(HistoryFields) != len(CumulativeFields)-1 {
		t.Errorf("history fields = %d, want %d", len(HistoryFields), len(CumulativeFields)-1)
	}
}
