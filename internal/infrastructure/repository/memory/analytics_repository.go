package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
)

// AnalyticsRepository applies events under one mutex so increments from
// concurrent viewers are never lost.
type AnalyticsRepository struct {
	mu    sync.Mutex
	items map[string]analytics.Record
}

func NewAnalyticsRepository() *AnalyticsRepository {
	return &AnalyticsRepository{items: make(map[string]analytics.Record)}
}

func (r *AnalyticsRepository) Apply(_ context.Context, matchID string, ev analytics.Event, now time.Time) (analytics.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[matchID]
	if !ok {
		rec = analytics.NewRecord(matchID, now)
	}
	next, err := analytics.ApplyEvent(rec, ev, now)
	if err != nil {
		return analytics.Record{}, err
	}
	r.items[matchID] = next
	return next, nil
}

func (r *AnalyticsRepository) Get(_ context.Context, matchID string) (analytics.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[matchID]
	return rec, ok, nil
}

func (r *AnalyticsRepository) ListTrending(_ context.Context, since time.Time, limit int) ([]analytics.Record, error) {
	r.mu.Lock()
	out := make([]analytics.Record, 0, len(r.items))
	for _, rec := range r.items {
		if !rec.LastUpdated.Before(since) {
			out = append(out, rec)
		}
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].InterestRating != out[j].InterestRating {
			return out[i].InterestRating > out[j].InterestRating
		}
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.After(out[j].LastUpdated)
		}
		return out[i].MatchID < out[j].MatchID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepository) DeleteInactiveBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, rec := range r.items {
		if rec.LastUpdated.Before(cutoff) {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}
