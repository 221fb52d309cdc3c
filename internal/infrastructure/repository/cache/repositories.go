package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	basecache "github.com/riskibarqy/matchday-aggregator/internal/platform/cache"
)

// DocumentRepository keeps a short-lived copy of document reads in front of
// the durable store. Writes go through and drop the cached entry.
type DocumentRepository struct {
	next  document.Repository
	cache *basecache.Store[cachedDocument]
}

func NewDocumentRepository(next document.Repository, ttl time.Duration) *DocumentRepository {
	return &DocumentRepository{next: next, cache: basecache.NewStore[cachedDocument](ttl)}
}

func (r *DocumentRepository) Get(ctx context.Context, collection, key string) (document.Document, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, documentKey(collection, key), func(ctx context.Context) (cachedDocument, error) {
		doc, exists, err := r.next.Get(ctx, collection, key)
		if err != nil {
			return cachedDocument{}, err
		}
		return cachedDocument{value: cloneDocument(doc), exists: exists}, nil
	})
	if err != nil {
		return document.Document{}, false, err
	}
	return cloneDocument(cached.value), cached.exists, nil
}

func (r *DocumentRepository) Put(ctx context.Context, doc document.Document) error {
	if err := r.next.Put(ctx, doc); err != nil {
		return err
	}
	r.cache.Delete(ctx, documentKey(doc.Collection, doc.Key))
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, collection, key string) error {
	if err := r.next.Delete(ctx, collection, key); err != nil {
		return err
	}
	r.cache.Delete(ctx, documentKey(collection, key))
	return nil
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]document.Document, error) {
	return r.next.List(ctx, collection)
}

func (r *DocumentRepository) DeleteEventBefore(ctx context.Context, collection string, cutoff time.Time) (int, error) {
	purged, err := r.next.DeleteEventBefore(ctx, collection, cutoff)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		r.cache.DeletePrefix(ctx, documentKey(collection, ""))
	}
	return purged, nil
}

type cachedDocument struct {
	value  document.Document
	exists bool
}

func documentKey(collection, key string) string {
	return "doc:" + document.Path(collection, key)
}

func cloneDocument(doc document.Document) document.Document {
	doc.Data = append([]byte(nil), doc.Data...)
	if doc.EventAt != nil {
		eventAt := *doc.EventAt
		doc.EventAt = &eventAt
	}
	return doc
}
