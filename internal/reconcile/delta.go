// Package reconcile turns cumulative season snapshots into discrete
// per-gameweek stat records, either by differencing two snapshots or by
// summing raw match history.
package reconcile

import (
	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// Discrete computes per-gameweek deltas between the current snapshot and
// the previous one. Left-join semantics over the current roster: every
// current player appears in the output, with a previous value of zero when
// the prior snapshot lacks the player or the field.
//
// A negative delta is taken as an upstream correction to the cumulative
// total rather than a real negative contribution; the current value stands
// in for the gameweek as the best available proxy. Point-in-time fields
// pass through from the current snapshot unchanged.
func Discrete(current, previous *snapshot.Snapshot) []snapshot.Row {
	var prev map[int]snapshot.Row
	if previous != nil {
		prev = previous.Index()
	}

	out := make([]snapshot.Row, 0, len(current.Rows))
	for _, cur := range current.Rows {
		row := snapshot.Row{
			ID:          cur.ID,
			FirstName:   cur.FirstName,
			SecondName:  cur.SecondName,
			WebName:     cur.WebName,
			Status:      cur.Status,
			PointInTime: make(map[string]*float64, len(snapshot.PointInTimeFields)),
			Cumulative:  make(map[string]float64, len(snapshot.CumulativeFields)),
		}
		for _, f := range snapshot.PointInTimeFields {
			row.PointInTime[f] = cur.PointInTime[f]
		}

		before := prev[cur.ID] // zero Row when absent; nil Cumulative reads as 0
		for _, f := range snapshot.CumulativeFields {
			d := cur.Cumulative[f] - before.Cumulative[f]
			if d < 0 {
				d = cur.Cumulative[f]
			}
			row.Cumulative[f] = d
		}
		out = append(out, row)
	}
	return out
}
