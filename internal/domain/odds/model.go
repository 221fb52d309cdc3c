package odds

import (
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
)

type Sport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"hasOutrights"`
}

// Quota is the request allowance reported by the odds provider.
type Quota struct {
	Remaining int `json:"remaining"`
	Used      int `json:"used"`
}

type SportList struct {
	Sports []Sport `json:"sports"`
	Quota  Quota   `json:"quota"`
}

type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"lastUpdate"`
	Outcomes   []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"lastUpdate"`
	Markets    []Market  `json:"markets"`
}

// Event is one fixture with the bookmaker prices offered for it.
type Event struct {
	Match      match.Match `json:"match"`
	SportTitle string      `json:"sportTitle"`
	Bookmakers []Bookmaker `json:"bookmakers"`
}

// Fallback is served when the provider cannot return the event.
func Fallback(sportKey, eventID string, now time.Time) Event {
	m := match.Match{
		ID:        eventID,
		Provider:  match.ProviderOdds,
		SportKey:  sportKey,
		KickoffAt: now.UTC(),
		Status:    match.StatusNotFound,
	}
	m.ApplyDefaults()
	m.Status = match.StatusNotFound

	title := strings.ReplaceAll(sportKey, "_", " ")
	m.CompetitionName = title
	return Event{
		Match:      m,
		SportTitle: title,
		Bookmakers: []Bookmaker{},
	}
}
