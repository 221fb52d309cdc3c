package match

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusNotFound  Status = "NOT_FOUND"
)

const (
	ProviderFootballData = "football-data"
	ProviderAPIFootball  = "api-football"
	ProviderOdds         = "odds-api"
)

const (
	DefaultHomeTeam = "Home Team"
	DefaultAwayTeam = "Away Team"
	DefaultVenue    = "TBD"
	DefaultMatchday = 1
)

// ParseStatus reads a canonical status value. Unknown values fall back to SCHEDULED.
func ParseStatus(value string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	case StatusPostponed:
		return StatusPostponed
	case StatusNotFound:
		return StatusNotFound
	default:
		return StatusScheduled
	}
}

type Team struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	CrestURL string `json:"crest,omitempty"`
}

type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// ProviderRef identifies the same fixture in the enrichment provider's id space.
type ProviderRef struct {
	FixtureID  int64 `json:"fixtureId"`
	LeagueID   int64 `json:"leagueId"`
	Season     int   `json:"season"`
	HomeTeamID int64 `json:"homeTeamId"`
	AwayTeamID int64 `json:"awayTeamId"`
}

func (r *ProviderRef) HasTeams() bool {
	return r != nil && r.HomeTeamID > 0 && r.AwayTeamID > 0
}

func (r *ProviderRef) HasLeague() bool {
	return r != nil && r.LeagueID > 0 && r.Season > 0
}

// Match is the canonical fixture record shared by every provider.
type Match struct {
	ID                string       `json:"id"`
	Provider          string       `json:"provider"`
	Synthetic         bool         `json:"synthetic,omitempty"`
	SportKey          string       `json:"sportKey,omitempty"`
	CompetitionCode   string       `json:"competitionCode,omitempty"`
	CompetitionName   string       `json:"competitionName"`
	CompetitionEmblem string       `json:"competitionEmblem,omitempty"`
	Country           string       `json:"country,omitempty"`
	HomeTeam          Team         `json:"homeTeam"`
	AwayTeam          Team         `json:"awayTeam"`
	KickoffAt         time.Time    `json:"utcDate"`
	Matchday          int          `json:"matchday"`
	Status            Status       `json:"status"`
	Venue             string       `json:"venue"`
	Score             Score        `json:"score"`
	Ref               *ProviderRef `json:"providerRef,omitempty"`
}

// ApplyDefaults fills the documented placeholders for absent fields.
func (m *Match) ApplyDefaults() {
	if strings.TrimSpace(m.HomeTeam.Name) == "" {
		m.HomeTeam.Name = DefaultHomeTeam
	}
	if strings.TrimSpace(m.AwayTeam.Name) == "" {
		m.AwayTeam.Name = DefaultAwayTeam
	}
	if strings.TrimSpace(m.Venue) == "" {
		m.Venue = DefaultVenue
	}
	if m.Matchday <= 0 {
		m.Matchday = DefaultMatchday
	}
	if m.Status == "" {
		m.Status = StatusScheduled
	}
}

// Persistable reports whether the match may be stored under its own key.
func (m Match) Persistable() bool {
	return !m.Synthetic && strings.TrimSpace(m.ID) != ""
}

// KickoffDate renders the UTC calendar date of kickoff as YYYY-MM-DD.
func (m Match) KickoffDate() string {
	if m.KickoffAt.IsZero() {
		return ""
	}
	return m.KickoffAt.UTC().Format(time.DateOnly)
}

// League groups matches under one competition name.
type League struct {
	Name    string  `json:"name"`
	Code    string  `json:"code,omitempty"`
	Emblem  string  `json:"emblem,omitempty"`
	Matches []Match `json:"matches"`
}

// GroupByLeague buckets matches by competition name in order of first appearance.
func GroupByLeague(matches []Match) []League {
	index := make(map[string]int, len(matches))
	out := make([]League, 0)
	for _, item := range matches {
		name := item.CompetitionName
		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			out = append(out, League{
				Name:   name,
				Code:   item.CompetitionCode,
				Emblem: item.CompetitionEmblem,
			})
		}
		out[pos].Matches = append(out[pos].Matches, item)
	}
	return out
}
