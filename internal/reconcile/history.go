package reconcile

import (
	"context"
	"log/slog"

	"github.com/3rfan/fpl-ai-recommender/internal/fpl"
	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// HistoryFetcher retrieves a player's match history. Satisfied by
// *fpl.Client; tests substitute a fake.
type HistoryFetcher interface {
	PlayerHistory(ctx context.Context, playerID int) ([]fpl.MatchStat, error)
}

// PlayerAggregate is the per-player outcome of the history path: either
// the summed values for the target round or a recorded fetch failure
// (in which case Values is all-zero, never missing).
type PlayerAggregate struct {
	ID     int
	Values map[string]float64
	Err    error
}

// HistorySummary counts how the aggregation went. Failed players are
// zero-filled, not dropped; the count keeps the failure signal visible.
type HistorySummary struct {
	Players int
	Fetched int
	Failed  int
}

// AggregateHistory reconstructs the discrete record set for gw from raw
// match history, one retrieval per player in the current roster. Entries
// whose round equals gw are summed field-by-field (a double gameweek has
// two or more); a player with no matching entries gets all zeros. A fetch
// failure for one player is logged and zero-filled without disturbing the
// rest of the batch.
//
// Output schema matches Discrete's: fields with no per-match equivalent
// are zero, point-in-time fields pass through from the current snapshot.
func AggregateHistory(ctx context.Context, f HistoryFetcher, current *snapshot.Snapshot, gw int, log *slog.Logger) ([]snapshot.Row, HistorySummary) {
	if log == nil {
		log = slog.Default()
	}

	sum := HistorySummary{Players: len(current.Rows)}
	out := make([]snapshot.Row, 0, len(current.Rows))
	for _, cur := range current.Rows {
		agg := aggregatePlayer(ctx, f, cur.ID, gw)
		if agg.Err != nil {
			sum.Failed++
			log.Warn("player history fetch failed, defaulting to zero",
				"player_id", cur.ID, "gameweek", gw, "error", agg.Err)
		} else {
			sum.Fetched++
		}

		row := snapshot.Row{
			ID:          cur.ID,
			FirstName:   cur.FirstName,
			SecondName:  cur.SecondName,
			WebName:     cur.WebName,
			Status:      cur.Status,
			PointInTime: make(map[string]*float64, len(snapshot.PointInTimeFields)),
			Cumulative:  make(map[string]float64, len(snapshot.CumulativeFields)),
		}
		for _, fld := range snapshot.PointInTimeFields {
			row.PointInTime[fld] = cur.PointInTime[fld]
		}
		for _, fld := range snapshot.CumulativeFields {
			row.Cumulative[fld] = agg.Values[fld]
		}
		out = append(out, row)
	}

	log.Info("history aggregation done",
		"gameweek", gw, "players", sum.Players, "fetched", sum.Fetched, "failed", sum.Failed)
	return out, sum
}

func aggregatePlayer(ctx context.Context, f HistoryFetcher, playerID, gw int) PlayerAggregate {
	agg := PlayerAggregate{ID: playerID, Values: make(map[string]float64, len(snapshot.HistoryFields))}
	for _, fld := range snapshot.HistoryFields {
		agg.Values[fld] = 0
	}

	matches, err := f.PlayerHistory(ctx, playerID)
	if err != nil {
		agg.Err = err
		return agg
	}
	for _, m := range matches {
		if m.Round != gw {
			continue
		}
		for _, fld := range snapshot.HistoryFields {
			agg.Values[fld] += m.Values[fld]
		}
	}
	return agg
}
