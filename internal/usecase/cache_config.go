package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/envelope"
)

type CacheConfig struct {
	LeaguesTTL     time.Duration
	FixturesTTL    time.Duration
	HeadToHeadTTL  time.Duration
	PredictionsTTL time.Duration

	TrendingWindow       time.Duration
	TrendingDefaultLimit int
	AnalyticsRetention   time.Duration

	FanoutConcurrency int
	WriteWorkers      int
	HeadToHeadLast    int

	// RefreshTimeout bounds single-flight work shared by concurrent callers.
	RefreshTimeout time.Duration
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		LeaguesTTL:           envelope.LeaguesTTL,
		FixturesTTL:          envelope.FixturesTTL,
		HeadToHeadTTL:        envelope.HeadToHeadTTL,
		PredictionsTTL:       envelope.PredictionsTTL,
		TrendingWindow:       7 * 24 * time.Hour,
		TrendingDefaultLimit: 20,
		AnalyticsRetention:   30 * 24 * time.Hour,
		FanoutConcurrency:    4,
		WriteWorkers:         8,
		HeadToHeadLast:       10,
		RefreshTimeout:       2 * time.Minute,
	}
}

// normalizeCacheConfig replaces non-positive values with defaults.
func normalizeCacheConfig(cfg CacheConfig) CacheConfig {
	def := DefaultCacheConfig()
	if cfg.LeaguesTTL <= 0 {
		cfg.LeaguesTTL = def.LeaguesTTL
	}
	if cfg.FixturesTTL <= 0 {
		cfg.FixturesTTL = def.FixturesTTL
	}
	if cfg.HeadToHeadTTL <= 0 {
		cfg.HeadToHeadTTL = def.HeadToHeadTTL
	}
	if cfg.PredictionsTTL <= 0 {
		cfg.PredictionsTTL = def.PredictionsTTL
	}
	if cfg.TrendingWindow <= 0 {
		cfg.TrendingWindow = def.TrendingWindow
	}
	if cfg.TrendingDefaultLimit <= 0 {
		cfg.TrendingDefaultLimit = def.TrendingDefaultLimit
	}
	if cfg.AnalyticsRetention <= 0 {
		cfg.AnalyticsRetention = def.AnalyticsRetention
	}
	if cfg.FanoutConcurrency <= 0 {
		cfg.FanoutConcurrency = def.FanoutConcurrency
	}
	if cfg.WriteWorkers <= 0 {
		cfg.WriteWorkers = def.WriteWorkers
	}
	if cfg.HeadToHeadLast <= 0 {
		cfg.HeadToHeadLast = def.HeadToHeadLast
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = def.RefreshTimeout
	}
	return cfg
}

// sharedContext keeps the values of ctx but not its cancellation: one
// waiter leaving must not fail the others.
func (cfg CacheConfig) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cfg.RefreshTimeout)
}
