package analytics

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestApplyEvent_Deltas(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	rec := NewRecord("42", now)

	steps := []Event{
		{Kind: EventClick},
		{Kind: EventTimeSpent, TimeSpent: 45},
		{Kind: EventTimeSpent, TimeSpent: -10},
		{Kind: EventPageView},
		{Kind: EventShare},
	}
	for _, ev := range steps {
		var err error
		rec, err = ApplyEvent(rec, ev, now)
		if err != nil {
			t.Fatalf("apply %s: %v", ev.Kind, err)
		}
	}

	if rec.Clicks != 1 || rec.TimeSpentSeconds != 45 || rec.PageViews != 1 || rec.Shares != 1 {
		t.Fatalf("unexpected counters: %+v", rec)
	}
	if rec.LastViewedAt == nil || !rec.LastViewedAt.Equal(now) {
		t.Fatalf("page view must stamp lastViewedAt")
	}
	// 4.5 + 5 + 2 + 10 = 21.5 -> 22
	if rec.InterestRating != 22 {
		t.Fatalf("unexpected rating: %d", rec.InterestRating)
	}
}

func TestApplyEvent_UnknownKind(t *testing.T) {
	t.Parallel()

	rec := NewRecord("42", time.Now())
	_, err := ApplyEvent(rec, Event{Kind: "hover"}, time.Now())
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{name: "two clicks", rec: Record{Clicks: 2}, want: 10},
		{name: "time capped", rec: Record{TimeSpentSeconds: 10000}, want: 60},
		{name: "no engagement bonus at 30s", rec: Record{TimeSpentSeconds: 30}, want: 3},
		{name: "bonus above 30s", rec: Record{TimeSpentSeconds: 31}, want: 13},
		{name: "shares ignored", rec: Record{Shares: 9, PageViews: 3}, want: 6},
	}
	for _, tc := range tests {
		if got := Rating(tc.rec); got != tc.want {
			t.Fatalf("%s: Rating() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestApplyEvent_RatingNeverDecreases(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	for run := 0; run < 50; run++ {
		rec := NewRecord("m", now)
		previous := rec.InterestRating
		for i := 0; i < 200; i++ {
			ev := Event{Kind: eventKinds[rng.Intn(len(eventKinds))], TimeSpent: rng.Intn(120)}
			next, err := ApplyEvent(rec, ev, now)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if next.InterestRating < previous {
				t.Fatalf("rating decreased from %d to %d after %+v", previous, next.InterestRating, ev)
			}
			previous = next.InterestRating
			rec = next
		}
	}
}

func TestParseEventKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseEventKind(" PageView ")
	if err != nil || kind != EventPageView {
		t.Fatalf("unexpected parse result: %s, %v", kind, err)
	}
	if _, err := ParseEventKind("scroll"); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}
