// Package snapshot defines the player stat schema and builds per-gameweek
// snapshots from raw bootstrap records.
//
// The schema is declared once and is stable across API versions: fields the
// upstream drops are synthesized with their default (zero for cumulative,
// null for point-in-time), fields it adds are ignored.
package snapshot

// IdentityFields are the join key for a player. Created once per player per
// season and never mutated.
var IdentityFields = []string{"id", "first_name", "second_name", "web_name"}

// PointInTimeFields are numeric fields meaningful only as of capture time.
// They are never differenced and may be null when the upstream value does
// not parse.
var PointInTimeFields = []string{
	"price",
	"selected_by_percent",
	"form",
	"ep_next",
	"ep_this",
}

// CumulativeFields are season-running totals. Absent or unparseable inputs
// coerce to zero so the delta computation always has a full vector.
var CumulativeFields = []string{
	"total_points",
	"minutes",
	"goals_scored",
	"assists",
	"clean_sheets",
	"goals_conceded",
	"own_goals",
	"penalties_saved",
	"penalties_missed",
	"yellow_cards",
	"red_cards",
	"saves",
	"bonus",
	"bps",
	"starts",
	"expected_goals",
	"expected_assists",
	"expected_goal_involvements",
	"expected_goals_conceded",
	"dreamteam_count",
}

// HistoryFields is the subset of CumulativeFields with a per-match
// equivalent in the element-summary history payload. dreamteam_count has no
// per-match counterpart and is zero-filled on the history path.
var HistoryFields = func() []string {
	out := make([]string, 0, len(CumulativeFields))
	for _, f := range CumulativeFields {
		if f == "dreamteam_count" {
			continue
		}
		out = append(out, f)
	}
	return out
}()

// Row is one player's full field set for a single gameweek. The same shape
// carries both cumulative snapshots and discrete per-gameweek records; only
// the meaning of Cumulative changes.
type Row struct {
	ID          int                 `json:"id"`
	FirstName   string              `json:"first_name"`
	SecondName  string              `json:"second_name"`
	WebName     string              `json:"web_name"`
	Status      string              `json:"status"`
	PointInTime map[string]*float64 `json:"point_in_time"`
	Cumulative  map[string]float64  `json:"cumulative"`
}

// Snapshot is a full capture of every player's fields for one gameweek.
// Written once per gameweek, then read-only.
type Snapshot struct {
	Gameweek       int    `json:"gameweek"`
	RunID          string `json:"run_id"`
	GeneratedAtUTC string `json:"generated_at_utc"`
	Rows           []Row  `json:"rows"`
}

// Index returns the snapshot's rows keyed by player id.
func (s *Snapshot) Index() map[int]Row {
	out := make(map[int]Row, len(s.Rows))
	for _, r := range s.Rows {
		out[r.ID] = r
	}
	return out
}
