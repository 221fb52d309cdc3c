package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-aggregator/external/apifootball"
	"github.com/riskibarqy/matchday-aggregator/external/footballdata"
	"github.com/riskibarqy/matchday-aggregator/external/oddsapi"
	"github.com/riskibarqy/matchday-aggregator/external/textgen"
	"github.com/riskibarqy/matchday-aggregator/internal/config"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	cacherepo "github.com/riskibarqy/matchday-aggregator/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-aggregator/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-aggregator/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-aggregator/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	idgen "github.com/riskibarqy/matchday-aggregator/internal/platform/id"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

// Container holds the wired services shared by the binaries.
type Container struct {
	Aggregation *usecase.AggregationService
	MatchDetail *usecase.MatchDetailService
	Interest    *usecase.InterestService
	Odds        *usecase.OddsService
	Maintenance *usecase.MaintenanceService
	Upstreams   map[string]httpapi.BreakerReporter

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	docs, analyticsRepo, db, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	footballData := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:        cfg.FootballData.BaseURL,
		Token:          cfg.FootballData.Key,
		Timeout:        cfg.FootballData.Timeout,
		MaxRetries:     cfg.FootballData.MaxRetries,
		Logger:         logger.Named("football-data"),
		CircuitBreaker: circuitConfig(cfg.FootballData),
	})
	apiFootball := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.APIFootball.BaseURL,
		Key:            cfg.APIFootball.Key,
		Timeout:        cfg.APIFootball.Timeout,
		MaxRetries:     cfg.APIFootball.MaxRetries,
		Logger:         logger.Named("api-football"),
		CircuitBreaker: circuitConfig(cfg.APIFootball),
	})
	oddsAPI := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:        cfg.OddsAPI.BaseURL,
		Key:            cfg.OddsAPI.Key,
		Regions:        cfg.OddsAPIRegions,
		Bookmakers:     cfg.OddsAPIBookmakers,
		Markets:        cfg.OddsAPIMarkets,
		Timeout:        cfg.OddsAPI.Timeout,
		MaxRetries:     cfg.OddsAPI.MaxRetries,
		Logger:         logger.Named("odds-api"),
		CircuitBreaker: circuitConfig(cfg.OddsAPI),
	})

	var generator usecase.AnalysisGenerator
	if cfg.TextGenEnabled {
		generator = textgen.NewClient(textgen.ClientConfig{
			BaseURL: cfg.TextGenBaseURL,
			APIKey:  cfg.TextGenAPIKey,
			Model:   cfg.TextGenModel,
			Timeout: cfg.TextGenTimeout,
			Logger:  logger.Named("textgen"),
		})
	}

	cacheCfg := cacheConfig(cfg)
	norm := normalizer.New(logger, idgen.NewSyntheticGenerator())
	interest := usecase.NewInterestService(analyticsRepo, docs, cacheCfg, logger)
	aggregation := usecase.NewAggregationService(docs, footballData, apiFootball, interest, norm, cacheCfg, logger)
	detail := usecase.NewMatchDetailService(docs, footballData, apiFootball, aggregation, interest, generator, match.SubstringMatcher{}, norm, cacheCfg, logger)

	return &Container{
		Aggregation: aggregation,
		MatchDetail: detail,
		Interest:    interest,
		Odds:        usecase.NewOddsService(oddsAPI, norm, cfg.OddsCacheTTL, logger),
		Maintenance: usecase.NewMaintenanceService(docs, interest, logger),
		Upstreams: map[string]httpapi.BreakerReporter{
			"football-data": footballData,
			"api-football":  apiFootball,
			"odds-api":      oddsAPI,
		},
		db: db,
	}, nil
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(c.Aggregation, c.MatchDetail, c.Interest, c.Odds, c.Maintenance, c.Upstreams, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SessionCookie:      cfg.AdminSessionCookie,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if strings.TrimSpace(server.Addr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func newRepositories(cfg config.Config, logger *logging.Logger) (document.Repository, analytics.Repository, *sqlx.DB, error) {
	var (
		docs          document.Repository
		analyticsRepo analytics.Repository
		db            *sqlx.DB
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		opened, err := openDB(cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		db = opened
		docs = postgres.NewDocumentRepository(db)
		analyticsRepo = postgres.NewAnalyticsRepository(db)
	default:
		docs = memory.NewDocumentRepository()
		analyticsRepo = memory.NewAnalyticsRepository()
	}

	if cfg.CacheEnabled {
		docs = cacherepo.NewDocumentRepository(docs, cfg.CacheTTL)
	}
	logger.Info("storage configured", "driver", cfg.StorageDriver, "read_cache", cfg.CacheEnabled)
	return docs, analyticsRepo, db, nil
}

func circuitConfig(up config.UpstreamConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          up.CircuitEnabled,
		FailureThreshold: up.CircuitFailureCount,
		OpenTimeout:      up.CircuitOpenTimeout,
		HalfOpenMaxReq:   up.CircuitHalfOpenMaxReq,
	}
}

func cacheConfig(cfg config.Config) usecase.CacheConfig {
	out := usecase.DefaultCacheConfig()
	out.LeaguesTTL = cfg.LeaguesTTL
	out.FixturesTTL = cfg.FixturesTTL
	out.HeadToHeadTTL = cfg.HeadToHeadTTL
	out.PredictionsTTL = cfg.PredictionsTTL
	out.TrendingWindow = cfg.TrendingWindow
	out.TrendingDefaultLimit = cfg.TrendingDefaultLimit
	out.AnalyticsRetention = cfg.AnalyticsRetention
	out.FanoutConcurrency = cfg.FanoutConcurrency
	return out
}
