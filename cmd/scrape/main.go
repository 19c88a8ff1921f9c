package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/3rfan/fpl-ai-recommender/internal/config"
	"github.com/3rfan/fpl-ai-recommender/internal/fpl"
	"github.com/3rfan/fpl-ai-recommender/internal/pipeline"
	"github.com/3rfan/fpl-ai-recommender/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	// flags beat file and env
	var (
		outDir   = flag.String("out", cfg.OutputDir, "output directory for CSV tables")
		snapDir  = flag.String("snapshots", cfg.SnapshotDir, "directory for per-gameweek snapshot files")
		timeout  = flag.Duration("timeout", cfg.Timeout(), "per-request timeout")
		pause    = flag.Duration("pause", cfg.RequestPause(), "pause between outbound requests")
		fallback = flag.Bool("history-fallback", cfg.HistoryFallback, "reconstruct from match history when no previous snapshot exists")
	)
	flag.Parse()

	cfg.OutputDir = *outDir
	cfg.SnapshotDir = *snapDir
	cfg.TimeoutSeconds = int(*timeout / time.Second)
	cfg.RequestPauseMS = int(*pause / time.Millisecond)
	cfg.HistoryFallback = *fallback

	log := newLogger(cfg.LogLevel)

	client := fpl.NewClient(fpl.ClientConfig{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   *timeout,
		Sleep:     *pause,
		Logger:    log,
	})
	runner := pipeline.NewRunner(cfg, client, snapshot.NewStore(cfg.SnapshotDir), log)

	if err := runner.Run(context.Background()); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
	log.Info("run complete", "output_dir", cfg.OutputDir)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
