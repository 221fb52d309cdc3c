package analytics

import (
	"context"
	"time"
)

// Repository persists analytics records. Apply must be atomic per match so
// concurrent events never lose an increment.
type Repository interface {
	Apply(ctx context.Context, matchID string, ev Event, now time.Time) (Record, error)
	Get(ctx context.Context, matchID string) (Record, bool, error)
	ListTrending(ctx context.Context, since time.Time, limit int) ([]Record, error)
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int, error)
}
