package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday-aggregator/internal/app"
	"github.com/riskibarqy/matchday-aggregator/internal/config"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

const refreshTimeout = 5 * time.Minute

// updateleagues refreshes the leagues document unconditionally and exits
// non-zero when the refresh fails.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel).With("service", cfg.ServiceName, "command", "updateleagues")
	logging.SetDefault(logger)

	os.Exit(run(cfg, logger))
}

func run(cfg config.Config, logger *logging.Logger) int {
	defer func() { _ = logger.Sync() }()

	container, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close storage failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	started := time.Now()
	result, err := container.Aggregation.RefreshLeagues(ctx)
	if err != nil {
		logger.Error("update leagues failed", "error", err, "duration_ms", time.Since(started).Milliseconds())
		return 1
	}

	logger.Info("leagues updated",
		"competitions", result.Competitions,
		"failed_competitions", result.FailedCompetitions,
		"matches", result.Matches,
		"persisted_matches", result.PersistedMatches,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return 0
}
