package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/odds"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
)

// CompetitionProvider is the primary fixtures source (competitions and
// their scheduled matches).
type CompetitionProvider interface {
	ListCompetitions(ctx context.Context) ([]normalizer.FootballDataCompetition, error)
	ListScheduledMatches(ctx context.Context, competitionCode string) ([]normalizer.FootballDataMatch, error)
	GetMatch(ctx context.Context, matchID string) (normalizer.FootballDataMatch, error)
}

// FixtureProvider is the enrichment source keyed by its own fixture and team ids.
type FixtureProvider interface {
	FixturesByDate(ctx context.Context, date string) ([]normalizer.APIFootballFixture, error)
	HeadToHead(ctx context.Context, homeTeamID, awayTeamID int64, last int) ([]normalizer.APIFootballFixture, error)
	Standings(ctx context.Context, leagueID int64, season int) ([]normalizer.APIFootballStandings, error)
	Predictions(ctx context.Context, fixtureID int64) (map[string]any, error)
}

type OddsProvider interface {
	ListSports(ctx context.Context) ([]normalizer.OddsSport, odds.Quota, error)
	EventOdds(ctx context.Context, sportKey, eventID string) (normalizer.OddsEvent, error)
}

// AnalysisPrompt carries the structured facts handed to the text generator.
type AnalysisPrompt struct {
	HomeTeam     string
	AwayTeam     string
	League       string
	KickoffAt    time.Time
	Venue        string
	HomeStanding *match.Standing
	AwayStanding *match.Standing
	HeadToHead   []match.HeadToHeadEntry
}

// AnalysisGenerator returns an HTML fragment. The text is treated as opaque.
type AnalysisGenerator interface {
	GenerateAnalysis(ctx context.Context, prompt AnalysisPrompt) (string, error)
}

func promptFromRecord(rec match.Record) AnalysisPrompt {
	prompt := AnalysisPrompt{
		HomeTeam:     rec.Match.HomeTeam.Name,
		AwayTeam:     rec.Match.AwayTeam.Name,
		League:       rec.Match.CompetitionName,
		KickoffAt:    rec.Match.KickoffAt,
		Venue:        rec.Match.Venue,
		HomeStanding: rec.HomeStanding,
		AwayStanding: rec.AwayStanding,
	}
	if rec.HeadToHead != nil {
		prompt.HeadToHead = rec.HeadToHead.Entries
	}
	return prompt
}
