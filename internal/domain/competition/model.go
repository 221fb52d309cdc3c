package competition

import "strings"

type Kind string

const (
	KindLeague Kind = "LEAGUE"
	KindCup    Kind = "CUP"
	// KindOther covers every other provider type (PLAYOFFS, LEAGUE_CUP, missing).
	KindOther Kind = "OTHER"
)

// Competition is a tournament listed by the competitions provider.
type Competition struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Emblem string `json:"emblem,omitempty"`
	Kind   Kind   `json:"type"`
}

func ParseKind(value string) Kind {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(KindLeague):
		return KindLeague
	case string(KindCup):
		return KindCup
	default:
		return KindOther
	}
}

func (c Competition) IsLeague() bool {
	return c.Kind == KindLeague
}

// Leagues keeps LEAGUE competitions in their original order.
func Leagues(items []Competition) []Competition {
	out := make([]Competition, 0, len(items))
	for _, item := range items {
		if item.IsLeague() {
			out = append(out, item)
		}
	}
	return out
}
