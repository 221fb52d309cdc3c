package competition

import "testing"

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
		"LEAGUE":     KindLeague,
		" league ":   KindLeague,
		"cup":        KindCup,
		" Cup ":      KindCup,
		"":           KindOther,
		"PLAYOFFS":   KindOther,
		"LEAGUE_CUP": KindOther,
	}
	for input, want := range cases {
		if got := ParseKind(input); got != want {
			t.Fatalf("ParseKind(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestLeagues_KeepsOnlyLeaguesInOrder(t *testing.T) {
	t.Parallel()

	got := Leagues([]Competition{
		{Code: "PL", Kind: KindLeague},
		{Code: "CL", Kind: KindCup},
		{Code: "SA", Kind: KindLeague},
		{Code: "EFL", Kind: ParseKind("LEAGUE_CUP")},
		{Code: "PO", Kind: ParseKind("")},
	})
	if len(got) != 2 || got[0].Code != "PL" || got[1].Code != "SA" {
		t.Fatalf("unexpected leagues: %+v", got)
	}
}
