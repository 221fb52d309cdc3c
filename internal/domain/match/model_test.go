package match

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	m := Match{ID: "9"}
	m.ApplyDefaults()

	if m.HomeTeam.Name != DefaultHomeTeam || m.AwayTeam.Name != DefaultAwayTeam {
		t.Fatalf("unexpected team defaults: %+v %+v", m.HomeTeam, m.AwayTeam)
	}
	if m.Venue != DefaultVenue || m.Matchday != DefaultMatchday || m.Status != StatusScheduled {
		t.Fatalf("unexpected defaults: %+v", m)
	}
	if m.Score.Home != nil || m.Score.Away != nil {
		t.Fatalf("score must stay unset")
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	if ParseStatus("finished") != StatusFinished {
		t.Fatalf("expected FINISHED")
	}
	if ParseStatus("whatever") != StatusScheduled {
		t.Fatalf("unknown status must map to SCHEDULED")
	}
}

func TestGroupByLeague_FirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	leagues := GroupByLeague([]Match{
		{ID: "1", CompetitionName: "Serie A"},
		{ID: "2", CompetitionName: "Premier League"},
		{ID: "3", CompetitionName: "Serie A"},
	})

	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	if leagues[0].Name != "Serie A" || leagues[1].Name != "Premier League" {
		t.Fatalf("unexpected order: %s, %s", leagues[0].Name, leagues[1].Name)
	}
	if len(leagues[0].Matches) != 2 || leagues[0].Matches[1].ID != "3" {
		t.Fatalf("unexpected matches: %+v", leagues[0].Matches)
	}
}

func TestDeriveWinner(t *testing.T) {
	t.Parallel()

	if DeriveWinner(2, 1) != WinnerHome || DeriveWinner(0, 3) != WinnerAway || DeriveWinner(1, 1) != WinnerDraw {
		t.Fatalf("unexpected winner derivation")
	}
}

func TestRecordNeedsHealing(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	standing := &Standing{TeamID: 1}
	complete := Record{
		HomeStanding: standing,
		AwayStanding: standing,
		HeadToHead:   &HeadToHead{UpdatedAt: now.Add(-time.Hour)},
	}

	if complete.NeedsHealing(now, 24*time.Hour) {
		t.Fatalf("complete record must not need healing")
	}

	missingAway := complete
	missingAway.AwayStanding = nil
	pieces := missingAway.MissingPieces(now, 24*time.Hour)
	if !pieces.Standings || pieces.HeadToHead {
		t.Fatalf("unexpected pieces: %+v", pieces)
	}

	staleH2H := complete
	staleH2H.HeadToHead = &HeadToHead{UpdatedAt: now.Add(-25 * time.Hour)}
	pieces = staleH2H.MissingPieces(now, 24*time.Hour)
	if pieces.Standings || !pieces.HeadToHead {
		t.Fatalf("unexpected pieces: %+v", pieces)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	home := 2
	existing := Record{
		Match:        Match{ID: "42", Provider: ProviderFootballData, Status: StatusScheduled, Ref: &ProviderRef{FixtureID: 7}},
		HomeStanding: &Standing{TeamID: 1},
		Analysis:     &Analysis{HTML: "<p>preview</p>"},
	}

	merged, ok := Merge(existing, Match{ID: "42", Provider: ProviderFootballData, Status: StatusLive, Score: Score{Home: &home}})
	if !ok {
		t.Fatalf("expected merge")
	}
	if merged.Match.Status != StatusLive || merged.Match.Score.Home == nil || *merged.Match.Score.Home != 2 {
		t.Fatalf("mutable fields not updated: %+v", merged.Match)
	}
	if merged.HomeStanding == nil || merged.Analysis == nil {
		t.Fatalf("enrichment blocks must be kept")
	}
	if merged.Match.Ref == nil || merged.Match.Ref.FixtureID != 7 {
		t.Fatalf("provider ref must be kept")
	}

	if _, ok := Merge(existing, Match{ID: "42", Provider: ProviderAPIFootball}); ok {
		t.Fatalf("cross-provider id collision must not merge")
	}

	fresh, ok := Merge(Record{}, Match{ID: "77", Provider: ProviderAPIFootball})
	if !ok || fresh.Match.ID != "77" {
		t.Fatalf("unexpected merge into empty record: %+v", fresh)
	}
}
