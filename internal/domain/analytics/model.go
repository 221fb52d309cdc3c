package analytics

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrUnknownEvent = errors.New("unknown analytics event")

type EventKind string

const (
	EventClick     EventKind = "click"
	EventTimeSpent EventKind = "timeSpent"
	EventPageView  EventKind = "pageView"
	EventShare     EventKind = "share"
)

var eventKinds = []EventKind{EventClick, EventTimeSpent, EventPageView, EventShare}

func ParseEventKind(value string) (EventKind, error) {
	trimmed := strings.TrimSpace(value)
	for _, kind := range eventKinds {
		if strings.EqualFold(trimmed, string(kind)) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, value)
}

// Event is one interaction reported by a viewer. TimeSpent is in seconds
// and only read for timeSpent events.
type Event struct {
	Kind      EventKind
	TimeSpent int
}

// Record accumulates interaction counters for one match.
type Record struct {
	MatchID          string     `json:"matchId"`
	Clicks           int        `json:"clicks"`
	TimeSpentSeconds int        `json:"timeSpent"`
	PageViews        int        `json:"pageViews"`
	Shares           int        `json:"shares"`
	InterestRating   int        `json:"interestRating"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdated      time.Time  `json:"lastUpdated"`
	LastViewedAt     *time.Time `json:"lastViewedAt,omitempty"`
}

func NewRecord(matchID string, now time.Time) Record {
	return Record{
		MatchID:     matchID,
		CreatedAt:   now.UTC(),
		LastUpdated: now.UTC(),
	}
}

const (
	timeScoreFactor  = 0.1
	timeScoreCap     = 50.0
	clickWeight      = 5
	pageViewWeight   = 2
	engagementBonus  = 10
	engagementCutoff = 30
)

// Rating computes
// round(min(timeSpent*0.1, 50) + clicks*5 + pageViews*2 + (timeSpent > 30 ? 10 : 0)).
// Shares are counted but not weighted.
func Rating(rec Record) int {
	timeScore := math.Min(float64(rec.TimeSpentSeconds)*timeScoreFactor, timeScoreCap)
	score := timeScore + float64(rec.Clicks*clickWeight) + float64(rec.PageViews*pageViewWeight)
	if rec.TimeSpentSeconds > engagementCutoff {
		score += engagementBonus
	}
	return int(math.Round(score))
}

// ApplyEvent returns rec with the event's delta applied and the rating recomputed.
func ApplyEvent(rec Record, ev Event, now time.Time) (Record, error) {
	now = now.UTC()
	switch ev.Kind {
	case EventClick:
		rec.Clicks++
	case EventTimeSpent:
		if ev.TimeSpent > 0 {
			rec.TimeSpentSeconds += ev.TimeSpent
		}
	case EventPageView:
		rec.PageViews++
		viewed := now
		rec.LastViewedAt = &viewed
	case EventShare:
		rec.Shares++
	default:
		return rec, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.LastUpdated = now
	rec.InterestRating = Rating(rec)
	return rec, nil
}

// Snapshot is the interest projection stored under interest/{matchId}.
type Snapshot struct {
	MatchID        string     `json:"matchId"`
	InterestRating int        `json:"interestRating"`
	LastViewedAt   *time.Time `json:"lastViewedAt,omitempty"`
}

func (r Record) Snapshot() Snapshot {
	return Snapshot{
		MatchID:        r.MatchID,
		InterestRating: r.InterestRating,
		LastViewedAt:   r.LastViewedAt,
	}
}
