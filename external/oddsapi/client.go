package oddsapi

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
	"github.com/riskibarqy/matchday-aggregator/internal/domain/odds"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.the-odds-api.com/v4"
	defaultRegions    = "eu"
	defaultBookmakers = "bet365,paddypower,williamhill"
	defaultMarkets    = "h2h,spreads,totals"
	apiKeyParam       = "apiKey"

	headerRemaining = "x-requests-remaining"
	headerUsed      = "x-requests-used"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Regions        string
	Bookmakers     string
	Markets        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads sports and event odds from the-odds-api.
type Client struct {
	fetcher    *upstream.Fetcher
	logger     *logging.Logger
	regions    string
	bookmakers string
	markets    string
}

var _ usecase.OddsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		fetcher: upstream.New(upstream.Config{
			Name:           "odds-api",
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        baseURL,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Query:          url.Values{apiKeyParam: []string{strings.TrimSpace(cfg.Key)}},
			SecretParams:   []string{apiKeyParam},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		regions:    valueOrDefault(cfg.Regions, defaultRegions),
		bookmakers: valueOrDefault(cfg.Bookmakers, defaultBookmakers),
		markets:    valueOrDefault(cfg.Markets, defaultMarkets),
		logger:     logger,
	}
}

// ListSports returns the sports catalogue and the request quota reported in
// the response headers.
func (c *Client) ListSports(ctx context.Context) ([]normalizer.OddsSport, odds.Quota, error) {
	var out []json.RawMessage
	header, err := c.fetcher.GetJSON(ctx, "/sports/", nil, &out)
	if err != nil {
		return nil, odds.Quota{}, fmt.Errorf("list sports: %w", err)
	}
	return normalizer.DecodeRecords[normalizer.OddsSport](c.logger, match.ProviderOdds, out), quotaFromHeader(header), nil
}

func (c *Client) EventOdds(ctx context.Context, sportKey, eventID string) (normalizer.OddsEvent, error) {
	sportKey = strings.TrimSpace(sportKey)
	eventID = strings.TrimSpace(eventID)
	if sportKey == "" || eventID == "" {
		return normalizer.OddsEvent{}, fmt.Errorf("%w: sport key and event id are required", usecase.ErrInvalidInput)
	}

	path := "/sports/" + url.PathEscape(sportKey) + "/events/" + url.PathEscape(eventID) + "/odds"
	query := url.Values{
		"regions":    []string{c.regions},
		"bookmakers": []string{c.bookmakers},
		"markets":    []string{c.markets},
	}
	var out normalizer.OddsEvent
	if _, err := c.fetcher.GetJSON(ctx, path, query, &out); err != nil {
		return normalizer.OddsEvent{}, fmt.Errorf("event odds sport=%s event=%s: %w", sportKey, eventID, err)
	}
	return out, nil
}

func (c *Client) Breaker() resilience.Snapshot {
	return c.fetcher.Breaker()
}

func quotaFromHeader(header http.Header) odds.Quota {
	return odds.Quota{
		Remaining: headerInt(header, headerRemaining),
		Used:      headerInt(header, headerUsed),
	}
}

func headerInt(header http.Header, key string) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(header.Get(key)), 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value)
}

func valueOrDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
