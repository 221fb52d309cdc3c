package normalizer

import (
	"strings"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
)

var footballDataStatuses = map[string]match.Status{
	"SCHEDULED": match.StatusScheduled,
	"TIMED":     match.StatusScheduled,
	"IN_PLAY":   match.StatusLive,
	"PAUSED":    match.StatusLive,
	"LIVE":      match.StatusLive,
	"FINISHED":  match.StatusFinished,
	"AWARDED":   match.StatusFinished,
	"POSTPONED": match.StatusPostponed,
	"SUSPENDED": match.StatusPostponed,
	"CANCELLED": match.StatusPostponed,
}

var apiFootballStatuses = map[string]match.Status{
	"TBD":  match.StatusScheduled,
	"NS":   match.StatusScheduled,
	"1H":   match.StatusLive,
	"HT":   match.StatusLive,
	"2H":   match.StatusLive,
	"ET":   match.StatusLive,
	"BT":   match.StatusLive,
	"P":    match.StatusLive,
	"SUSP": match.StatusLive,
	"INT":  match.StatusLive,
	"LIVE": match.StatusLive,
	"FT":   match.StatusFinished,
	"AET":  match.StatusFinished,
	"PEN":  match.StatusFinished,
	"AWD":  match.StatusFinished,
	"WO":   match.StatusFinished,
	"PST":  match.StatusPostponed,
	"CANC": match.StatusPostponed,
	"ABD":  match.StatusPostponed,
}

func MapFootballDataStatus(value string) match.Status {
	return lookupStatus(footballDataStatuses, value)
}

func MapAPIFootballStatus(short string) match.Status {
	return lookupStatus(apiFootballStatuses, short)
}

// MapOddsStatus maps the odds provider's completed flag.
func MapOddsStatus(completed *bool) match.Status {
	if completed != nil && *completed {
		return match.StatusFinished
	}
	return match.StatusScheduled
}

func lookupStatus(table map[string]match.Status, value string) match.Status {
	if status, ok := table[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return status
	}
	return match.StatusScheduled
}
