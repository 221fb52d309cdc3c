package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/envelope"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/prediction"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/resilience"
	"github.com/sourcegraph/conc"
)

const (
	MatchNotFoundMessage   = "Match not found in the database"
	MatchLoadFailedMessage = "Failed to load match data. Please try again later."
)

// MatchDetailResult is never an error for a missing match: MatchFound is
// false and Error carries the message to show.
type MatchDetailResult struct {
	MatchFound       bool                    `json:"matchFound"`
	Match            *match.Match            `json:"match,omitempty"`
	HomeTeamStanding *match.Standing         `json:"homeTeamStanding"`
	AwayTeamStanding *match.Standing         `json:"awayTeamStanding"`
	HeadToHead       []match.HeadToHeadEntry `json:"headToHead"`
	Predictions      map[string]any          `json:"predictions"`
	Analysis         *match.Analysis         `json:"analysis"`
	Interest         *analytics.Snapshot     `json:"interest,omitempty"`
	Error            string                  `json:"error,omitempty"`
}

type MatchDetailService struct {
	docs         document.Repository
	competitions CompetitionProvider
	fixtures     FixtureProvider
	aggregation  *AggregationService
	interest     *InterestService
	generator    AnalysisGenerator
	matcher      match.NameMatcher
	normalizer   *normalizer.Normalizer
	policy       envelope.Policy
	cfg          CacheConfig
	logger       *logging.Logger
	now          func() time.Time

	matchFlight resilience.Group[match.Record]
}

func NewMatchDetailService(
	docs document.Repository,
	competitions CompetitionProvider,
	fixtures FixtureProvider,
	aggregation *AggregationService,
	interest *InterestService,
	generator AnalysisGenerator,
	matcher match.NameMatcher,
	norm *normalizer.Normalizer,
	cfg CacheConfig,
	logger *logging.Logger,
) *MatchDetailService {
	if logger == nil {
		logger = logging.Default()
	}
	if matcher == nil {
		matcher = match.SubstringMatcher{}
	}
	if norm == nil {
		norm = normalizer.New(logger, nil)
	}
	svc := &MatchDetailService{
		docs:         docs,
		competitions: competitions,
		fixtures:     fixtures,
		aggregation:  aggregation,
		interest:     interest,
		generator:    generator,
		matcher:      matcher,
		normalizer:   norm,
		cfg:          normalizeCacheConfig(cfg),
		logger:       logger,
		now:          time.Now,
	}
	svc.policy = envelope.Policy{Now: func() time.Time { return svc.now() }}
	return svc
}

func notFoundResult() MatchDetailResult {
	return MatchDetailResult{MatchFound: false, Error: MatchNotFoundMessage}
}

func loadFailedResult() MatchDetailResult {
	return MatchDetailResult{MatchFound: false, Error: MatchLoadFailedMessage}
}

// GetMatchDetail loads matches/{id}, fetching it from the primary provider on
// a miss and healing absent enrichment blocks before responding. Only a rate
// limit is returned as an error.
func (s *MatchDetailService) GetMatchDetail(ctx context.Context, matchID string) (MatchDetailResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDetailService.GetMatchDetail")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetailResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	rec, found, err := loadMatchRecord(ctx, s.docs, s.logger, matchID)
	if err != nil {
		s.logger.ErrorContext(ctx, "load match record failed", "match_id", matchID, "error", err)
		return loadFailedResult(), nil
	}

	if !found {
		rec, err, _ = s.matchFlight.Do("match:"+matchID, func() (match.Record, error) {
			shared, cancel := s.cfg.sharedContext(ctx)
			defer cancel()
			return s.fetchMatch(shared, matchID)
		})
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				return MatchDetailResult{}, err
			}
			s.logger.WarnContext(ctx, "match not found", "match_id", matchID, "error", err)
			return notFoundResult(), nil
		}
	}

	if rec.NeedsHealing(s.now().UTC(), s.cfg.HeadToHeadTTL) {
		healed, changed := s.heal(ctx, rec)
		if changed {
			if err := saveMatchRecord(ctx, s.docs, healed, s.now().UTC()); err != nil {
				s.logger.WarnContext(ctx, "write healed match record failed", "match_id", matchID, "error", err)
			} else {
				rec = healed
			}
		}
	}

	if rec.Analysis == nil && s.generator != nil {
		if generated, err := s.generateAnalysis(ctx, rec); err != nil {
			s.logger.WarnContext(ctx, "generate match analysis failed", "match_id", matchID, "error", err)
		} else {
			rec = generated
		}
	}

	result := MatchDetailResult{
		MatchFound:       true,
		Match:            &rec.Match,
		HomeTeamStanding: rec.HomeStanding,
		AwayTeamStanding: rec.AwayStanding,
		HeadToHead:       []match.HeadToHeadEntry{},
		Predictions:      s.predictions(ctx, rec),
		Analysis:         rec.Analysis,
	}
	if rec.HeadToHead != nil && rec.HeadToHead.Entries != nil {
		result.HeadToHead = rec.HeadToHead.Entries
	}
	if s.interest != nil {
		snapshot, err := s.interest.Snapshot(ctx, matchID)
		if err != nil {
			s.logger.WarnContext(ctx, "load interest snapshot failed", "match_id", matchID, "error", err)
		}
		result.Interest = snapshot
	}
	return result, nil
}

func (s *MatchDetailService) fetchMatch(ctx context.Context, matchID string) (match.Record, error) {
	if s.competitions == nil {
		return match.Record{}, fmt.Errorf("%w: competitions provider is not configured", ErrDependencyUnavailable)
	}

	raw, err := s.competitions.GetMatch(ctx, matchID)
	if err != nil {
		return match.Record{}, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	item, err := s.normalizer.FootballDataMatch(raw)
	if err != nil {
		return match.Record{}, fmt.Errorf("%w: match=%s: %v", ErrNotFound, matchID, err)
	}
	if item.Synthetic || item.ID != matchID {
		return match.Record{}, fmt.Errorf("%w: upstream returned match=%s for id=%s", ErrNotFound, item.ID, matchID)
	}

	rec := match.Record{Match: item}
	if err := saveMatchRecord(ctx, s.docs, rec, s.now().UTC()); err != nil {
		return match.Record{}, err
	}
	return rec, nil
}

// heal fetches only the missing enrichment pieces and merges them into rec.
// Pieces that fail stay absent.
func (s *MatchDetailService) heal(ctx context.Context, rec match.Record) (match.Record, bool) {
	if s.fixtures == nil {
		return rec, false
	}
	now := s.now().UTC()
	pieces := rec.MissingPieces(now, s.cfg.HeadToHeadTTL)
	changed := false

	ref := rec.Match.Ref
	if !ref.HasTeams() {
		resolved, ok := s.resolveRef(ctx, rec.Match)
		if !ok {
			return rec, false
		}
		ref = resolved
		rec.Match.Ref = resolved
		changed = true
	}

	var (
		standings     []match.Standing
		standingsErr  error
		entries       []match.HeadToHeadEntry
		headToHeadOK  bool
		headToHeadErr error
	)

	var wg conc.WaitGroup
	if pieces.Standings && ref.HasLeague() {
		wg.Go(func() {
			raws, err := s.fixtures.Standings(ctx, ref.LeagueID, ref.Season)
			if err != nil {
				standingsErr = err
				return
			}
			standings = s.normalizer.Standings(raws)
		})
	}
	if pieces.HeadToHead {
		wg.Go(func() {
			raws, err := s.fixtures.HeadToHead(ctx, ref.HomeTeamID, ref.AwayTeamID, s.cfg.HeadToHeadLast)
			if err != nil {
				headToHeadErr = err
				return
			}
			entries = s.normalizer.HeadToHead(raws)
			headToHeadOK = true
		})
	}
	wg.Wait()

	if standingsErr != nil {
		s.logger.WarnContext(ctx, "heal standings failed", "match_id", rec.Match.ID, "error", standingsErr)
	}
	if rec.HomeStanding == nil {
		if row, ok := match.FindStanding(standings, ref.HomeTeamID); ok {
			rec.HomeStanding = &row
			changed = true
		}
	}
	if rec.AwayStanding == nil {
		if row, ok := match.FindStanding(standings, ref.AwayTeamID); ok {
			rec.AwayStanding = &row
			changed = true
		}
	}

	if headToHeadErr != nil {
		s.logger.WarnContext(ctx, "heal head-to-head failed", "match_id", rec.Match.ID, "error", headToHeadErr)
	}
	if headToHeadOK {
		rec.HeadToHead = &match.HeadToHead{Entries: entries, UpdatedAt: now}
		changed = true
	}
	return rec, changed
}

// resolveRef finds the match in the enrichment provider's fixtures for the
// kickoff date using the team name matcher.
func (s *MatchDetailService) resolveRef(ctx context.Context, item match.Match) (*match.ProviderRef, bool) {
	date := item.KickoffDate()
	if date == "" || s.aggregation == nil {
		return nil, false
	}

	candidates, err := s.aggregation.fixtureCandidates(ctx, date)
	if err != nil {
		s.logger.WarnContext(ctx, "load fixture candidates failed", "match_id", item.ID, "date", date, "error", err)
		return nil, false
	}
	found, ok := match.FindFixture(candidates, item.HomeTeam.Name, item.AwayTeam.Name, s.matcher)
	if !ok || !found.Ref.HasTeams() {
		s.logger.WarnContext(ctx, "no enrichment fixture matched",
			"match_id", item.ID,
			"date", date,
			"home_team", item.HomeTeam.Name,
			"away_team", item.AwayTeam.Name,
		)
		return nil, false
	}
	return found.Ref, true
}

// predictions serves predictions/{id} within its TTL and refreshes it from
// the enrichment provider otherwise. A failed refresh falls back to the
// stale copy.
func (s *MatchDetailService) predictions(ctx context.Context, rec match.Record) map[string]any {
	empty := map[string]any{}
	matchID := rec.Match.ID

	cached, err := loadEnvelope[prediction.Record](ctx, s.docs, s.logger, document.CollectionPredictions, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "load predictions failed", "match_id", matchID, "error", err)
		return empty
	}
	if envelope.IsFresh(s.policy, cached, s.cfg.PredictionsTTL) {
		return nonNilMap(cached.Payload.Data)
	}

	stale := empty
	if cached != nil {
		stale = nonNilMap(cached.Payload.Data)
	}
	if s.fixtures == nil || rec.Match.Ref == nil || rec.Match.Ref.FixtureID <= 0 {
		return stale
	}

	raw, err := s.fixtures.Predictions(ctx, rec.Match.Ref.FixtureID)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh predictions failed", "match_id", matchID, "error", err)
		return stale
	}
	now := s.now().UTC()
	fresh := s.normalizer.Prediction(matchID, raw, now)
	if _, err := saveEnvelope(ctx, s.docs, document.CollectionPredictions, matchID, fresh, now, nil); err != nil {
		s.logger.WarnContext(ctx, "write predictions failed", "match_id", matchID, "error", err)
	}
	return nonNilMap(fresh.Data)
}

func (s *MatchDetailService) generateAnalysis(ctx context.Context, rec match.Record) (match.Record, error) {
	html, err := s.generator.GenerateAnalysis(ctx, promptFromRecord(rec))
	if err != nil {
		return rec, err
	}
	now := s.now().UTC()
	rec.Analysis = &match.Analysis{HTML: html, GeneratedAt: now}
	if err := saveMatchRecord(ctx, s.docs, rec, now); err != nil {
		return rec, err
	}
	return rec, nil
}

// RegenerateAnalysis replaces the cached analysis of a stored match.
func (s *MatchDetailService) RegenerateAnalysis(ctx context.Context, matchID string) (match.Analysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDetailService.RegenerateAnalysis")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Analysis{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if s.generator == nil {
		return match.Analysis{}, fmt.Errorf("%w: analysis generator is not configured", ErrDependencyUnavailable)
	}

	rec, found, err := loadMatchRecord(ctx, s.docs, s.logger, matchID)
	if err != nil {
		return match.Analysis{}, err
	}
	if !found {
		return match.Analysis{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	rec, err = s.generateAnalysis(ctx, rec)
	if err != nil {
		return match.Analysis{}, fmt.Errorf("regenerate analysis: %w", err)
	}
	return *rec.Analysis, nil
}

func nonNilMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return in
}
