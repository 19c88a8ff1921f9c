package fpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// MatchStat is one match a player took part in: the round it belongs to
// plus the per-match (not cumulative) values for every history-derivable
// field. Entries are ephemeral; only their per-round sums are kept.
type MatchStat struct {
	Round  int
	Values map[string]float64
}

// PlayerHistory fetches /element-summary/{id}/ and decodes the history
// array. This is the slow path's per-player call; each invocation pays the
// configured inter-request pause.
func (c *Client) PlayerHistory(ctx context.Context, playerID int) ([]MatchStat, error) {
	body, err := c.get(ctx, fmt.Sprintf("/element-summary/%d/", playerID))
	if err != nil {
		return nil, err
	}

	var payload struct {
		History []map[string]any `json:"history"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse element-summary %d: %w", playerID, err)
	}

	out := make([]MatchStat, 0, len(payload.History))
	for _, h := range payload.History {
		round, ok := snapshot.Number(h["round"])
		if !ok || round <= 0 {
			continue
		}
		m := MatchStat{Round: int(round), Values: make(map[string]float64, len(snapshot.HistoryFields))}
		for _, f := range snapshot.HistoryFields {
			v, _ := snapshot.Number(h[f])
			m.Values[f] = v
		}
		out = append(out, m)
	}
	return out, nil
}
