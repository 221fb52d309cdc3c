package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/competition"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/envelope"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const maxTrendingLimit = 100

type leaguesPayload struct {
	Leagues    []match.League `json:"leagues"`
	AllMatches []match.Match  `json:"allMatches"`
}

type LeaguesView struct {
	Leagues    []match.League `json:"leagues"`
	AllMatches []match.Match  `json:"allMatches"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Stale      bool           `json:"stale,omitempty"`
}

type fixturesPayload struct {
	Leagues []match.League `json:"leagues"`
}

type FixturesView struct {
	Date      string         `json:"date"`
	Leagues   []match.League `json:"leagues"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Stale     bool           `json:"stale,omitempty"`
}

type TrendingItem struct {
	Match     match.Match      `json:"match"`
	Analytics analytics.Record `json:"analytics"`
}

// RefreshResult summarizes one unconditional leagues refresh.
type RefreshResult struct {
	Competitions       int       `json:"competitions"`
	FailedCompetitions int       `json:"failedCompetitions"`
	Matches            int       `json:"matches"`
	PersistedMatches   int       `json:"persistedMatches"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// AggregationService serves leagues, fixtures and trending views from the
// document store and refreshes them from upstream when stale.
type AggregationService struct {
	docs         document.Repository
	competitions CompetitionProvider
	fixtures     FixtureProvider
	interest     *InterestService
	normalizer   *normalizer.Normalizer
	policy       envelope.Policy
	cfg          CacheConfig
	logger       *logging.Logger
	now          func() time.Time

	leaguesFlight  resilience.Group[refreshedLeagues]
	fixturesFlight resilience.Group[FixturesView]
}

type refreshedLeagues struct {
	view   LeaguesView
	result RefreshResult
}

func NewAggregationService(
	docs document.Repository,
	competitions CompetitionProvider,
	fixtures FixtureProvider,
	interest *InterestService,
	norm *normalizer.Normalizer,
	cfg CacheConfig,
	logger *logging.Logger,
) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	if norm == nil {
		norm = normalizer.New(logger, nil)
	}
	svc := &AggregationService{
		docs:         docs,
		competitions: competitions,
		fixtures:     fixtures,
		interest:     interest,
		normalizer:   norm,
		cfg:          normalizeCacheConfig(cfg),
		logger:       logger,
		now:          time.Now,
	}
	svc.policy = envelope.Policy{Now: func() time.Time { return svc.now() }}
	return svc
}

func (s *AggregationService) clock() time.Time {
	return s.now().UTC()
}

func (s *AggregationService) GetLeagues(ctx context.Context) (LeaguesView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetLeagues")
	defer span.End()

	cached, err := loadEnvelope[leaguesPayload](ctx, s.docs, s.logger, document.CollectionLeagues, document.LeaguesKey)
	if err != nil {
		return LeaguesView{}, err
	}
	if envelope.IsFresh(s.policy, cached, s.cfg.LeaguesTTL) {
		return leaguesView(*cached, false), nil
	}

	refreshed, err, _ := s.leaguesFlight.Do("leagues", func() (refreshedLeagues, error) {
		shared, cancel := s.cfg.sharedContext(ctx)
		defer cancel()
		view, result, err := s.refreshLeagues(shared)
		return refreshedLeagues{view: view, result: result}, err
	})
	if err == nil {
		return refreshed.view, nil
	}

	switch {
	case errors.Is(err, ErrRateLimited):
		if cached != nil {
			s.logger.WarnContext(ctx, "serve stale leagues after rate limit", "updated_at", cached.UpdatedAt, "error", err)
			return leaguesView(*cached, true), nil
		}
		return LeaguesView{}, err
	case errors.Is(err, ErrDependencyUnavailable):
		if cached != nil {
			s.logger.WarnContext(ctx, "serve stale leagues after upstream failure", "updated_at", cached.UpdatedAt, "error", err)
			return leaguesView(*cached, true), nil
		}
		s.logger.WarnContext(ctx, "serve empty leagues after upstream failure", "error", err)
		return LeaguesView{Leagues: []match.League{}, AllMatches: []match.Match{}, Stale: true}, nil
	default:
		return LeaguesView{}, err
	}
}

// RefreshLeagues rebuilds the leagues document unconditionally. Errors propagate.
func (s *AggregationService) RefreshLeagues(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RefreshLeagues")
	defer span.End()

	refreshed, err, _ := s.leaguesFlight.Do("leagues", func() (refreshedLeagues, error) {
		shared, cancel := s.cfg.sharedContext(ctx)
		defer cancel()
		view, result, err := s.refreshLeagues(shared)
		return refreshedLeagues{view: view, result: result}, err
	})
	if err != nil {
		return RefreshResult{}, err
	}
	return refreshed.result, nil
}

type competitionFetch struct {
	index   int
	comp    competition.Competition
	matches []match.Match
	err     error
}

func (s *AggregationService) refreshLeagues(ctx context.Context) (LeaguesView, RefreshResult, error) {
	if s.competitions == nil {
		return LeaguesView{}, RefreshResult{}, fmt.Errorf("%w: competitions provider is not configured", ErrDependencyUnavailable)
	}

	rawCompetitions, err := s.competitions.ListCompetitions(ctx)
	if err != nil {
		return LeaguesView{}, RefreshResult{}, fmt.Errorf("list competitions: %w", err)
	}
	leagues := competition.Leagues(s.normalizer.Competitions(rawCompetitions))

	fanout := pool.NewWithResults[competitionFetch]().WithMaxGoroutines(s.cfg.FanoutConcurrency)
	for i, comp := range leagues {
		i, comp := i, comp
		fanout.Go(func() competitionFetch {
			raws, err := s.competitions.ListScheduledMatches(ctx, comp.Code)
			if err != nil {
				return competitionFetch{index: i, comp: comp, err: err}
			}
			return competitionFetch{index: i, comp: comp, matches: s.normalizer.FootballDataMatches(comp, raws)}
		})
	}
	fetched := fanout.Wait()
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].index < fetched[j].index })

	result := RefreshResult{Competitions: len(leagues)}
	allMatches := make([]match.Match, 0)
	var firstErr error
	for _, item := range fetched {
		if item.err != nil {
			result.FailedCompetitions++
			if firstErr == nil {
				firstErr = item.err
			}
			s.logger.WarnContext(ctx, "skip competition after fetch failure",
				"competition", item.comp.Code,
				"error", item.err,
			)
			continue
		}
		allMatches = append(allMatches, item.matches...)
	}
	if len(leagues) > 0 && result.FailedCompetitions == len(leagues) {
		return LeaguesView{}, result, fmt.Errorf("fetch scheduled matches for every competition: %w", firstErr)
	}

	now := s.clock()
	payload := leaguesPayload{Leagues: match.GroupByLeague(allMatches), AllMatches: allMatches}
	env, err := saveEnvelope(ctx, s.docs, document.CollectionLeagues, document.LeaguesKey, payload, now, nil)
	if err != nil {
		return LeaguesView{}, result, err
	}

	persisted, err := s.persistMatches(ctx, allMatches)
	if err != nil {
		return LeaguesView{}, result, err
	}

	result.Matches = len(allMatches)
	result.PersistedMatches = persisted
	result.UpdatedAt = env.UpdatedAt
	s.logger.InfoContext(ctx, "leagues refreshed",
		"competitions", result.Competitions,
		"failed_competitions", result.FailedCompetitions,
		"matches", result.Matches,
		"persisted_matches", result.PersistedMatches,
	)
	return leaguesView(env, false), result, nil
}

func (s *AggregationService) GetFixturesForDate(ctx context.Context, date string) (FixturesView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetFixturesForDate")
	defer span.End()

	date, err := normalizeDate(date)
	if err != nil {
		return FixturesView{}, err
	}

	cached, err := loadEnvelope[fixturesPayload](ctx, s.docs, s.logger, document.CollectionFixtures, date)
	if err != nil {
		return FixturesView{}, err
	}
	if envelope.IsFresh(s.policy, cached, s.cfg.FixturesTTL) {
		return fixturesView(date, *cached, false), nil
	}

	view, err, _ := s.fixturesFlight.Do("fixtures:"+date, func() (FixturesView, error) {
		shared, cancel := s.cfg.sharedContext(ctx)
		defer cancel()
		return s.refreshFixtures(shared, date)
	})
	if err == nil {
		return view, nil
	}

	switch {
	case errors.Is(err, ErrRateLimited):
		if cached != nil {
			s.logger.WarnContext(ctx, "serve stale fixtures after rate limit", "date", date, "error", err)
			return fixturesView(date, *cached, true), nil
		}
		return FixturesView{}, err
	case errors.Is(err, ErrDependencyUnavailable):
		if cached != nil {
			s.logger.WarnContext(ctx, "serve stale fixtures after upstream failure", "date", date, "error", err)
			return fixturesView(date, *cached, true), nil
		}
		s.logger.WarnContext(ctx, "serve empty fixtures after upstream failure", "date", date, "error", err)
		return FixturesView{Date: date, Leagues: []match.League{}, Stale: true}, nil
	default:
		return FixturesView{}, err
	}
}

func (s *AggregationService) refreshFixtures(ctx context.Context, date string) (FixturesView, error) {
	if s.fixtures == nil {
		return FixturesView{}, fmt.Errorf("%w: fixtures provider is not configured", ErrDependencyUnavailable)
	}

	raws, err := s.fixtures.FixturesByDate(ctx, date)
	if err != nil {
		return FixturesView{}, fmt.Errorf("fetch fixtures for %s: %w", date, err)
	}
	matches := s.normalizer.APIFootballFixtures(raws)

	now := s.clock()
	env, err := saveEnvelope(ctx, s.docs, document.CollectionFixtures, date, fixturesPayload{Leagues: match.GroupByLeague(matches)}, now, nil)
	if err != nil {
		return FixturesView{}, err
	}
	if _, err := s.persistMatches(ctx, matches); err != nil {
		return FixturesView{}, err
	}
	return fixturesView(date, env, false), nil
}

// fixtureCandidates lists the enrichment provider's fixtures on one date,
// through the fixtures cache.
func (s *AggregationService) fixtureCandidates(ctx context.Context, date string) ([]match.Match, error) {
	view, err := s.GetFixturesForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]match.Match, 0)
	for _, league := range view.Leagues {
		out = append(out, league.Matches...)
	}
	return out, nil
}

// persistMatches merges every identifiable match into matches/{id} through
// a worker pool and waits for all writes.
func (s *AggregationService) persistMatches(ctx context.Context, matches []match.Match) (int, error) {
	items := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if item.Persistable() {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return 0, nil
	}

	workerCount := s.cfg.WriteWorkers
	if workerCount > len(items) {
		workerCount = len(items)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var written atomic.Int32
	var wg sync.WaitGroup
	for _, item := range items {
		item := item
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			ok, err := s.mergeMatch(ctx, item)
			if err != nil {
				s.logger.WarnContext(ctx, "persist match failed", "match_id", item.ID, "error", err)
				return
			}
			if ok {
				written.Add(1)
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return int(written.Load()), fmt.Errorf("submit match write to worker pool: %w", err)
		}
	}
	wg.Wait()
	return int(written.Load()), nil
}

func (s *AggregationService) mergeMatch(ctx context.Context, item match.Match) (bool, error) {
	existing, _, err := loadMatchRecord(ctx, s.docs, s.logger, item.ID)
	if err != nil {
		return false, err
	}
	merged, ok := match.Merge(existing, item)
	if !ok {
		s.logger.WarnContext(ctx, "skip match write for id owned by another provider",
			"match_id", item.ID,
			"stored_provider", existing.Match.Provider,
			"incoming_provider", item.Provider,
		)
		return false, nil
	}
	if err := saveMatchRecord(ctx, s.docs, merged, s.clock()); err != nil {
		return false, err
	}
	return true, nil
}

// GetTrending joins the most interesting recent matches with their stored
// records. Analytics rows whose match is gone are dropped.
func (s *AggregationService) GetTrending(ctx context.Context, limit int) ([]TrendingItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetTrending")
	defer span.End()

	if s.interest == nil {
		return nil, fmt.Errorf("%w: interest service is not configured", ErrDependencyUnavailable)
	}
	records, err := s.interest.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]TrendingItem, 0, len(records))
	for _, rec := range records {
		stored, ok, err := loadMatchRecord(ctx, s.docs, s.logger, rec.MatchID)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.WarnContext(ctx, "drop trending entry without stored match", "match_id", rec.MatchID)
			continue
		}
		out = append(out, TrendingItem{Match: stored.Match, Analytics: rec})
	}
	return out, nil
}

func leaguesView(env envelope.Envelope[leaguesPayload], stale bool) LeaguesView {
	view := LeaguesView{
		Leagues:    env.Payload.Leagues,
		AllMatches: env.Payload.AllMatches,
		UpdatedAt:  env.UpdatedAt,
		Stale:      stale,
	}
	if view.Leagues == nil {
		view.Leagues = []match.League{}
	}
	if view.AllMatches == nil {
		view.AllMatches = []match.Match{}
	}
	return view
}

func fixturesView(date string, env envelope.Envelope[fixturesPayload], stale bool) FixturesView {
	view := FixturesView{
		Date:      date,
		Leagues:   env.Payload.Leagues,
		UpdatedAt: env.UpdatedAt,
		Stale:     stale,
	}
	if view.Leagues == nil {
		view.Leagues = []match.League{}
	}
	return view
}

func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, value)
	}
	return parsed.Format(time.DateOnly), nil
}
