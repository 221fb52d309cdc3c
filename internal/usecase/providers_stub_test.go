package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/odds"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
)

type competitionProviderStub struct {
	competitions []normalizer.FootballDataCompetition
	listErr      error
	matches      map[string][]normalizer.FootballDataMatch
	matchErrs    map[string]error
	byID         map[string]normalizer.FootballDataMatch
	getErr       error
	delay        time.Duration

	listCalls atomic.Int32
	getCalls  atomic.Int32
}

func (s *competitionProviderStub) ListCompetitions(context.Context) ([]normalizer.FootballDataCompetition, error) {
	s.listCalls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.competitions, nil
}

func (s *competitionProviderStub) ListScheduledMatches(_ context.Context, code string) ([]normalizer.FootballDataMatch, error) {
	if err := s.matchErrs[code]; err != nil {
		return nil, err
	}
	return s.matches[code], nil
}

func (s *competitionProviderStub) GetMatch(_ context.Context, matchID string) (normalizer.FootballDataMatch, error) {
	s.getCalls.Add(1)
	if s.getErr != nil {
		return normalizer.FootballDataMatch{}, s.getErr
	}
	raw, ok := s.byID[matchID]
	if !ok {
		return normalizer.FootballDataMatch{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return raw, nil
}

type fixtureProviderStub struct {
	mu          sync.Mutex
	byDate      map[string][]normalizer.APIFootballFixture
	datesErr    error
	headToHead  []normalizer.APIFootballFixture
	h2hErr      error
	standings   []normalizer.APIFootballStandings
	standingErr error
	predictions map[string]any
	predErr     error

	dateCalls      atomic.Int32
	h2hCalls       atomic.Int32
	standingsCalls atomic.Int32
	predCalls      atomic.Int32
	h2hLast        int
}

func (s *fixtureProviderStub) FixturesByDate(_ context.Context, date string) ([]normalizer.APIFootballFixture, error) {
	s.dateCalls.Add(1)
	if s.datesErr != nil {
		return nil, s.datesErr
	}
	return s.byDate[date], nil
}

func (s *fixtureProviderStub) HeadToHead(_ context.Context, _, _ int64, last int) ([]normalizer.APIFootballFixture, error) {
	s.h2hCalls.Add(1)
	s.mu.Lock()
	s.h2hLast = last
	s.mu.Unlock()
	if s.h2hErr != nil {
		return nil, s.h2hErr
	}
	return s.headToHead, nil
}

func (s *fixtureProviderStub) Standings(context.Context, int64, int) ([]normalizer.APIFootballStandings, error) {
	s.standingsCalls.Add(1)
	if s.standingErr != nil {
		return nil, s.standingErr
	}
	return s.standings, nil
}

func (s *fixtureProviderStub) Predictions(context.Context, int64) (map[string]any, error) {
	s.predCalls.Add(1)
	if s.predErr != nil {
		return nil, s.predErr
	}
	return s.predictions, nil
}

type oddsProviderStub struct {
	sports    []normalizer.OddsSport
	quota     odds.Quota
	sportsErr error
	event     normalizer.OddsEvent
	eventErr  error

	sportsCalls atomic.Int32
}

func (s *oddsProviderStub) ListSports(context.Context) ([]normalizer.OddsSport, odds.Quota, error) {
	s.sportsCalls.Add(1)
	if s.sportsErr != nil {
		return nil, odds.Quota{}, s.sportsErr
	}
	return s.sports, s.quota, nil
}

func (s *oddsProviderStub) EventOdds(context.Context, string, string) (normalizer.OddsEvent, error) {
	if s.eventErr != nil {
		return normalizer.OddsEvent{}, s.eventErr
	}
	return s.event, nil
}

type generatorStub struct {
	html  string
	err   error
	calls atomic.Int32
}

func (s *generatorStub) GenerateAnalysis(context.Context, AnalysisPrompt) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.html, nil
}

func footballDataMatch(id int64, home, away, utcDate string) normalizer.FootballDataMatch {
	return normalizer.FootballDataMatch{
		ID:       id,
		UTCDate:  utcDate,
		Status:   "TIMED",
		HomeTeam: &normalizer.FootballDataTeam{ID: id*10 + 1, Name: home},
		AwayTeam: &normalizer.FootballDataTeam{ID: id*10 + 2, Name: away},
	}
}

func apiFootballFixture(fixtureID, homeID, awayID int64, home, away, date string) normalizer.APIFootballFixture {
	return normalizer.APIFootballFixture{
		Fixture: &normalizer.APIFootballFixtureInfo{ID: fixtureID, Date: date, Status: &normalizer.APIFootballStatus{Short: "NS"}},
		League:  &normalizer.APIFootballLeague{ID: 39, Name: "Premier League", Country: "England", Season: 2026, Round: "Regular Season - 8"},
		Teams: &normalizer.APIFootballTeams{
			Home: &normalizer.APIFootballTeam{ID: homeID, Name: home},
			Away: &normalizer.APIFootballTeam{ID: awayID, Name: away},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
}
