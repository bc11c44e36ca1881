package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
	"github.com/pthm-cable/arena/store"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (implies -autopilot)")
	autopilot := flag.Bool("autopilot", false, "Let the agent rules steer the player")
	name := flag.String("name", "", "Player name (empty = ask on the start screen)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	highScoreFile := flag.String("highscore-file", "", "High score file (empty = user config dir; memory only when headless)")
	mute := flag.Bool("mute", false, "Start with sound muted")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *headless {
		*autopilot = true
	}

	opts := game.SessionOptions{
		Engine: game.Options{
			Seed:   rngSeed,
			Store:  openStore(*highScoreFile, *headless, logger),
			Logger: logger,
		},
		Name:           *name,
		Autopilot:      *autopilot,
		AutoRestart:    *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	session, err := game.NewSession(cfg, opts)
	if err != nil {
		logger.Error("failed to create session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("failed to close output", "error", err)
		}
	}()

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runHeadless(ctx, session, rngSeed, *maxTicks, *stepsPerUpdate, logger)
		return
	}

	runGraphical(cfg, session, graphicalOptions{
		seed:      rngSeed,
		name:      *name,
		mute:      *mute,
		autopilot: *autopilot,
		maxTicks:  *maxTicks,
	}, logger)
}

// openStore returns the persistent high score store, or a memory store when
// persistence is off or the file cannot be read.
func openStore(path string, headless bool, logger *slog.Logger) game.ScoreStore {
	if path == "" {
		if headless {
			return game.NewMemoryStore(0)
		}
		dir, err := os.UserConfigDir()
		if err != nil {
			logger.Warn("no user config dir, high score not persisted", "error", err)
			return game.NewMemoryStore(0)
		}
		path = filepath.Join(dir, "cell-arena", "highscore.yaml")
	}

	f, err := store.Open(path)
	if err != nil {
		logger.Warn("high score file unreadable, starting from 0", "path", path, "error", err)
		return game.NewMemoryStore(0)
	}
	logger.Info("high score loaded", "path", f.Path(), "high_score", f.HighScore())
	return f
}

func runHeadless(ctx context.Context, session *game.Session, seed int64, maxTicks, steps int, logger *slog.Logger) {
	logger.Info("starting headless simulation",
		"seed", seed,
		"max_ticks", maxTicks,
		"steps_per_update", steps,
	)

	if err := session.Start(""); err != nil {
		logger.Error("failed to start", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "tick", session.Tick(), "games", session.Games())
			return
		default:
		}

		session.UpdateHeadless()

		if maxTicks > 0 && int(session.Tick()) >= maxTicks {
			logger.Info("max ticks reached", "tick", session.Tick(), "games", session.Games())
			return
		}
	}
}
