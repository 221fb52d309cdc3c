package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/external/upstream"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.football-data.org/v4"
	authHeader        = "X-Auth-Token"
	scheduledStatuses = "SCHEDULED"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads competitions and matches from football-data.org.
type Client struct {
	fetcher *upstream.Fetcher
	logger  *logging.Logger
}

var _ usecase.CompetitionProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{logger: logger, fetcher: upstream.New(upstream.Config{
		Name:           "football-data",
		HTTPClient:     cfg.HTTPClient,
		BaseURL:        baseURL,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		Headers:        map[string]string{authHeader: strings.TrimSpace(cfg.Token)},
		Logger:         logger,
		CircuitBreaker: cfg.CircuitBreaker,
	})}
}

func (c *Client) ListCompetitions(ctx context.Context) ([]normalizer.FootballDataCompetition, error) {
	var out normalizer.FootballDataCompetitionList
	if _, err := c.fetcher.GetJSON(ctx, "/competitions", nil, &out); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return normalizer.DecodeRecords[normalizer.FootballDataCompetition](c.logger, match.ProviderFootballData, out.Competitions), nil
}

func (c *Client) ListScheduledMatches(ctx context.Context, competitionCode string) ([]normalizer.FootballDataMatch, error) {
	competitionCode = strings.TrimSpace(competitionCode)
	if competitionCode == "" {
		return nil, fmt.Errorf("%w: competition code is required", usecase.ErrInvalidInput)
	}

	path := "/competitions/" + url.PathEscape(competitionCode) + "/matches"
	var out normalizer.FootballDataMatchList
	if _, err := c.fetcher.GetJSON(ctx, path, url.Values{"status": []string{scheduledStatuses}}, &out); err != nil {
		return nil, fmt.Errorf("list scheduled matches competition=%s: %w", competitionCode, err)
	}
	return normalizer.DecodeRecords[normalizer.FootballDataMatch](c.logger, match.ProviderFootballData, out.Matches), nil
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (normalizer.FootballDataMatch, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return normalizer.FootballDataMatch{}, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	var out normalizer.FootballDataMatch
	if _, err := c.fetcher.GetJSON(ctx, "/matches/"+url.PathEscape(matchID), nil, &out); err != nil {
		return normalizer.FootballDataMatch{}, fmt.Errorf("get match id=%s: %w", matchID, err)
	}
	return out, nil
}

func (c *Client) Breaker() resilience.Snapshot {
	return c.fetcher.Breaker()
}
