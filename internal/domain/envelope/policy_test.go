package envelope

import (
	"testing"
	"time"
)

func TestPolicy_IsFresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	policy := Policy{Now: func() time.Time { return now }}

	tests := []struct {
		name string
		env  *Envelope[int]
		ttl  time.Duration
		want bool
	}{
		{name: "missing envelope", env: nil, ttl: LeaguesTTL, want: false},
		{name: "zero stamp", env: &Envelope[int]{Payload: 1}, ttl: LeaguesTTL, want: false},
		{name: "just written", env: &Envelope[int]{UpdatedAt: now}, ttl: PredictionsTTL, want: true},
		{name: "inside window", env: &Envelope[int]{UpdatedAt: now.Add(-23 * time.Hour)}, ttl: FixturesTTL, want: true},
		{name: "exactly at ttl", env: &Envelope[int]{UpdatedAt: now.Add(-5 * time.Hour)}, ttl: PredictionsTTL, want: false},
		{name: "older than ttl", env: &Envelope[int]{UpdatedAt: now.Add(-25 * time.Hour)}, ttl: HeadToHeadTTL, want: false},
		{name: "non-positive ttl", env: &Envelope[int]{UpdatedAt: now}, ttl: 0, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := IsFresh(policy, tc.env, tc.ttl); got != tc.want {
				t.Fatalf("IsFresh() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPolicy_GarbageStampIsStale(t *testing.T) {
	t.Parallel()

	env, err := Decode[int]([]byte(`{"payload":7,"updatedAt":"not-a-time"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if IsFresh(NewPolicy(), &env, 100*365*24*time.Hour) {
		t.Fatalf("garbage timestamp must be stale")
	}
}
