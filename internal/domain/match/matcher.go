package match

import "strings"

// NameMatcher decides whether two provider team names denote the same team.
type NameMatcher interface {
	SameTeam(a, b string) bool
}

var teamSuffixes = []string{"football club", "fc"}

// NormalizeTeamName lower-cases the name and strips trailing club suffixes.
func NormalizeTeamName(name string) string {
	out := strings.ToLower(strings.TrimSpace(name))
	for changed := true; changed; {
		changed = false
		for _, suffix := range teamSuffixes {
			if strings.HasSuffix(out, " "+suffix) {
				out = strings.TrimSpace(strings.TrimSuffix(out, suffix))
				changed = true
			}
		}
	}
	return out
}

// SubstringMatcher treats names as equal after normalization or when one
// contains the other. Short names can false-positive.
type SubstringMatcher struct{}

func (SubstringMatcher) SameTeam(a, b string) bool {
	left := NormalizeTeamName(a)
	right := NormalizeTeamName(b)
	if left == "" || right == "" {
		return false
	}
	return left == right || strings.Contains(left, right) || strings.Contains(right, left)
}

// FindFixture returns the first candidate whose teams match both names.
func FindFixture(candidates []Match, homeTeam, awayTeam string, matcher NameMatcher) (Match, bool) {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	for _, candidate := range candidates {
		if matcher.SameTeam(candidate.HomeTeam.Name, homeTeam) && matcher.SameTeam(candidate.AwayTeam.Name, awayTeam) {
			return candidate, true
		}
	}
	return Match{}, false
}
