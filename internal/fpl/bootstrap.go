package fpl

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event is one entry in the bootstrap events array. A round is complete
// when it is both finished and data-checked.
type Event struct {
	ID          int  `json:"id"`
	Finished    bool `json:"finished"`
	DataChecked bool `json:"data_checked"`
}

// Team is one entry in the bootstrap teams array.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Bootstrap is the bulk payload: the round schedule, the team roster and
// the full player list. Elements stay loose records; the snapshot builder
// owns coercion into the declared schema.
type Bootstrap struct {
	Events   []Event          `json:"events"`
	Teams    []Team           `json:"teams"`
	Elements []map[string]any `json:"elements"`
}

// Bootstrap fetches /bootstrap-static/. Any transport, status or decode
// failure here is fatal to a run: there is no data to reconcile without it.
func (c *Client) Bootstrap(ctx context.Context) (*Bootstrap, error) {
	body, err := c.get(ctx, "/bootstrap-static/")
	if err != nil {
		return nil, err
	}
	var bs Bootstrap
	if err := json.Unmarshal(body, &bs); err != nil {
		return nil, fmt.Errorf("parse bootstrap-static: %w", err)
	}
	return &bs, nil
}

// LastCompletedGameweek returns the highest event id that is both finished
// and data-checked. ok is false when no round qualifies yet (season start);
// callers should treat that as gameweek 1.
func LastCompletedGameweek(events []Event) (gw int, ok bool) {
	for _, e := range events {
		if e.Finished && e.DataChecked && e.ID > gw {
			gw = e.ID
		}
	}
	return gw, gw > 0
}
