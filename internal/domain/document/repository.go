package document

import (
	"context"
	"time"
)

// Repository stores keyed documents. Put replaces the whole value in one write.
type Repository interface {
	Get(ctx context.Context, collection, key string) (Document, bool, error)
	Put(ctx context.Context, doc Document) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]Document, error)
	DeleteEventBefore(ctx context.Context, collection string, cutoff time.Time) (int, error)
}
