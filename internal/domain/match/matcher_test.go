package match

import "testing"

func TestNormalizeTeamName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Arsenal FC":                   "arsenal",
		"  Chelsea  ":                  "chelsea",
		"Wrexham Football Club":        "wrexham",
		"Forest Green Rovers fc":       "forest green rovers",
		"FC":                           "fc",
		"AFC Bournemouth":              "afc bournemouth",
		"Brighton & Hove Albion FC FC": "brighton & hove albion",
	}
	for input, want := range cases {
		if got := NormalizeTeamName(input); got != want {
			t.Fatalf("NormalizeTeamName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSubstringMatcher_SameTeam(t *testing.T) {
	t.Parallel()

	m := SubstringMatcher{}
	if !m.SameTeam("Arsenal FC", "arsenal") {
		t.Fatalf("expected suffix-insensitive match")
	}
	if !m.SameTeam("Manchester United", "Manchester United FC") {
		t.Fatalf("expected match after suffix strip")
	}
	if !m.SameTeam("Wolves", "Wolverhampton Wolves") {
		t.Fatalf("expected substring containment match")
	}
	if m.SameTeam("Liverpool", "Everton") {
		t.Fatalf("unexpected match for different teams")
	}
	if m.SameTeam("", "Everton") {
		t.Fatalf("empty name must not match")
	}
}

func TestFindFixture_CaseAndSuffixInsensitive(t *testing.T) {
	t.Parallel()

	candidates := []Match{
		{ID: "1", HomeTeam: Team{Name: "Tottenham Hotspur"}, AwayTeam: Team{Name: "Fulham"}},
		{ID: "2", HomeTeam: Team{Name: "Arsenal FC"}, AwayTeam: Team{Name: "Chelsea"}},
		{ID: "3", HomeTeam: Team{Name: "Arsenal"}, AwayTeam: Team{Name: "Chelsea FC"}},
	}

	got, ok := FindFixture(candidates, "Arsenal", "Chelsea FC", nil)
	if !ok {
		t.Fatalf("expected fixture to be found")
	}
	if got.ID != "2" {
		t.Fatalf("expected first matching candidate, got %s", got.ID)
	}
}

func TestFindFixture_NoMatch(t *testing.T) {
	t.Parallel()

	candidates := []Match{
		{ID: "1", HomeTeam: Team{Name: "Chelsea"}, AwayTeam: Team{Name: "Arsenal"}},
	}
	if _, ok := FindFixture(candidates, "Arsenal", "Chelsea", SubstringMatcher{}); ok {
		t.Fatalf("home and away must not be swapped")
	}
}

type exactMatcher struct{}

func (exactMatcher) SameTeam(a, b string) bool { return a == b }

func TestFindFixture_UsesInjectedMatcher(t *testing.T) {
	t.Parallel()

	candidates := []Match{
		{ID: "1", HomeTeam: Team{Name: "Arsenal FC"}, AwayTeam: Team{Name: "Chelsea"}},
	}
	if _, ok := FindFixture(candidates, "Arsenal", "Chelsea", exactMatcher{}); ok {
		t.Fatalf("exact matcher must reject suffix differences")
	}
}
