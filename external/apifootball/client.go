package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
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
	defaultBaseURL = "https://v3.football.api-sports.io"
	authHeader     = "x-apisports-key"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads fixtures, standings, head-to-head and predictions from api-football.
type Client struct {
	fetcher *upstream.Fetcher
	logger  *logging.Logger
}

var _ usecase.FixtureProvider = (*Client)(nil)

type envelope[T any] struct {
	Errors   any `json:"errors"`
	Results  int `json:"results"`
	Response []T `json:"response"`
}

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
		Name:           "api-football",
		HTTPClient:     cfg.HTTPClient,
		BaseURL:        baseURL,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		Headers:        map[string]string{authHeader: strings.TrimSpace(cfg.Key)},
		Logger:         logger,
		CircuitBreaker: cfg.CircuitBreaker,
	})}
}

func (c *Client) FixturesByDate(ctx context.Context, date string) ([]normalizer.APIFootballFixture, error) {
	var out envelope[json.RawMessage]
	if _, err := c.fetcher.GetJSON(ctx, "/fixtures", url.Values{"date": []string{date}}, &out); err != nil {
		return nil, fmt.Errorf("fixtures by date=%s: %w", date, err)
	}
	return normalizer.DecodeRecords[normalizer.APIFootballFixture](c.logger, match.ProviderAPIFootball, out.Response), nil
}

func (c *Client) HeadToHead(ctx context.Context, homeTeamID, awayTeamID int64, last int) ([]normalizer.APIFootballFixture, error) {
	if homeTeamID <= 0 || awayTeamID <= 0 {
		return nil, fmt.Errorf("%w: both team ids are required", usecase.ErrInvalidInput)
	}

	query := url.Values{"h2h": []string{strconv.FormatInt(homeTeamID, 10) + "-" + strconv.FormatInt(awayTeamID, 10)}}
	if last > 0 {
		query.Set("last", strconv.Itoa(last))
	}
	var out envelope[json.RawMessage]
	if _, err := c.fetcher.GetJSON(ctx, "/fixtures/headtohead", query, &out); err != nil {
		return nil, fmt.Errorf("head-to-head teams=%d-%d: %w", homeTeamID, awayTeamID, err)
	}
	return normalizer.DecodeRecords[normalizer.APIFootballFixture](c.logger, match.ProviderAPIFootball, out.Response), nil
}

func (c *Client) Standings(ctx context.Context, leagueID int64, season int) ([]normalizer.APIFootballStandings, error) {
	if leagueID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: league id and season are required", usecase.ErrInvalidInput)
	}

	query := url.Values{
		"league": []string{strconv.FormatInt(leagueID, 10)},
		"season": []string{strconv.Itoa(season)},
	}
	var out envelope[json.RawMessage]
	if _, err := c.fetcher.GetJSON(ctx, "/standings", query, &out); err != nil {
		return nil, fmt.Errorf("standings league=%d season=%d: %w", leagueID, season, err)
	}
	return normalizer.DecodeRecords[normalizer.APIFootballStandings](c.logger, match.ProviderAPIFootball, out.Response), nil
}

// Predictions returns the first prediction object of the fixture as an
// opaque map.
func (c *Client) Predictions(ctx context.Context, fixtureID int64) (map[string]any, error) {
	if fixtureID <= 0 {
		return nil, fmt.Errorf("%w: fixture id is required", usecase.ErrInvalidInput)
	}

	var out envelope[map[string]any]
	if _, err := c.fetcher.GetJSON(ctx, "/predictions", url.Values{"fixture": []string{strconv.FormatInt(fixtureID, 10)}}, &out); err != nil {
		return nil, fmt.Errorf("predictions fixture=%d: %w", fixtureID, err)
	}
	if len(out.Response) == 0 {
		return nil, fmt.Errorf("%w: predictions fixture=%d", usecase.ErrNotFound, fixtureID)
	}
	return out.Response[0], nil
}

func (c *Client) Breaker() resilience.Snapshot {
	return c.fetcher.Breaker()
}
