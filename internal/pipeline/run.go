// Package pipeline orchestrates one scrape run: bulk fetch, snapshot,
// reconciliation, CSV export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/3rfan/fpl-ai-recommender/internal/config"
	"github.com/3rfan/fpl-ai-recommender/internal/export"
	"github.com/3rfan/fpl-ai-recommender/internal/fpl"
	"github.com/3rfan/fpl-ai-recommender/internal/reconcile"
	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

// ErrEmptyRoster aborts a run whose bootstrap payload carries no players,
// before anything is written: an empty table on disk would be
// indistinguishable from "zero stats".
var ErrEmptyRoster = errors.New("bootstrap returned no players")

var positionNames = map[int]string{1: "GK", 2: "DEF", 3: "MID", 4: "FWD"}

type Runner struct {
	cfg    *config.Config
	client *fpl.Client
	store  *snapshot.Store
	log    *slog.Logger
}

func NewRunner(cfg *config.Config, client *fpl.Client, store *snapshot.Store, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{cfg: cfg, client: client, store: store, log: log}
}

// Run executes the batch once. The bulk fetch is fatal on failure; after
// that, the single three-way branch picks the reconciliation path:
// previous snapshot -> delta, else fallback enabled -> match history,
// else the current cumulative values stand in verbatim.
func (r *Runner) Run(ctx context.Context) error {
	bs, err := r.client.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap fetch: %w", err)
	}
	if len(bs.Elements) == 0 {
		return ErrEmptyRoster
	}

	gw, ok := fpl.LastCompletedGameweek(bs.Events)
	if !ok {
		gw = 1
		r.log.Warn("no completed gameweek found, defaulting to 1")
	}
	r.log.Info("run starting", "gameweek", gw, "players", len(bs.Elements), "teams", len(bs.Teams))

	current := snapshot.Build(bs.Elements, gw)
	r.log.Info("snapshot built", "gameweek", gw, "run_id", current.RunID, "rows", len(current.Rows))

	// snapshots are immutable once written; an existing file is trusted
	if r.store.Exists(gw) {
		r.log.Info("snapshot already persisted, leaving in place", "gameweek", gw)
	} else if err := r.store.Write(current); err != nil {
		return fmt.Errorf("write snapshot gw %d: %w", gw, err)
	}

	rows, err := r.discrete(ctx, current, gw)
	if err != nil {
		return err
	}

	return r.export(bs, gw, rows)
}

func (r *Runner) discrete(ctx context.Context, current *snapshot.Snapshot, gw int) ([]snapshot.Row, error) {
	if r.store.Exists(gw - 1) {
		previous, err := r.store.Load(gw - 1)
		if err != nil {
			return nil, fmt.Errorf("load snapshot gw %d: %w", gw-1, err)
		}
		r.log.Info("reconciling by snapshot delta", "gameweek", gw, "previous", gw-1)
		return reconcile.Discrete(current, previous), nil
	}

	if r.cfg.HistoryFallback {
		r.log.Info("no previous snapshot, reconstructing from match history",
			"gameweek", gw, "players", len(current.Rows))
		rows, _ := reconcile.AggregateHistory(ctx, r.client, current, gw, r.log)
		return rows, nil
	}

	// Wrong for any gameweek after the first, but better than producing
	// nothing: the season-to-date totals stand in for the gameweek.
	r.log.Warn("no previous snapshot and fallback disabled, using cumulative values verbatim",
		"gameweek", gw)
	return current.Rows, nil
}

func (r *Runner) export(bs *fpl.Bootstrap, gw int, rows []snapshot.Row) error {
	teamsPath := filepath.Join(r.cfg.OutputDir, "teams.csv")
	if err := export.WriteTeams(teamsPath, bs.Teams); err != nil {
		return fmt.Errorf("write teams: %w", err)
	}
	r.log.Info("wrote teams table", "path", teamsPath, "teams", len(bs.Teams))

	playersPath := filepath.Join(r.cfg.OutputDir, "players.csv")
	players := buildPlayerMaster(bs)
	if err := export.WritePlayers(playersPath, players); err != nil {
		return fmt.Errorf("write players: %w", err)
	}
	r.log.Info("wrote player master table", "path", playersPath, "players", len(players))

	gwPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("player_stats_gw%d.csv", gw))
	if err := export.WriteGameweekStats(gwPath, gw, rows); err != nil {
		return fmt.Errorf("write gameweek stats: %w", err)
	}
	latestPath := filepath.Join(r.cfg.OutputDir, "player_stats_last_gw.csv")
	if err := export.WriteGameweekStats(latestPath, gw, rows); err != nil {
		return fmt.Errorf("write latest gameweek stats: %w", err)
	}
	r.log.Info("wrote gameweek stats", "path", gwPath, "latest", latestPath, "rows", len(rows))
	return nil
}

// buildPlayerMaster projects bootstrap elements into the player master
// table, joining team names and mapping element types to positions the way
// the rest of the product expects (1=GK, 2=DEF, 3=MID, 4=FWD).
func buildPlayerMaster(bs *fpl.Bootstrap) []export.PlayerRow {
	teams := make(map[int]fpl.Team, len(bs.Teams))
	for _, t := range bs.Teams {
		teams[t.ID] = t
	}

	snap := snapshot.Build(bs.Elements, 0)
	meta := make(map[int]map[string]any, len(bs.Elements))
	for _, el := range bs.Elements {
		if id, ok := snapshot.Number(el["id"]); ok {
			meta[int(id)] = el
		}
	}

	players := make([]export.PlayerRow, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		el := meta[row.ID]

		teamID := 0
		if v, ok := snapshot.Number(el["team"]); ok {
			teamID = int(v)
		}
		team := teams[teamID]
		if team.Name == "" {
			team.Name, team.ShortName = "Unknown", "UNK"
		}

		position := "UNK"
		if v, ok := snapshot.Number(el["element_type"]); ok {
			if name, ok := positionNames[int(v)]; ok {
				position = name
			}
		}

		fullName := row.FirstName
		if row.SecondName != "" {
			if fullName != "" {
				fullName += " "
			}
			fullName += row.SecondName
		}

		players = append(players, export.PlayerRow{
			FPLID:       row.ID,
			Name:        row.WebName,
			FullName:    fullName,
			TeamName:    team.Name,
			TeamShort:   team.ShortName,
			TeamFPLCode: teamID,
			Position:    position,
			Status:      row.Status,
			PointInTime: row.PointInTime,
		})
	}
	return players
}
