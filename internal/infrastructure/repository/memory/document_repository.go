package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
)

type DocumentRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]document.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{items: make(map[string]map[string]document.Document)}
}

func (r *DocumentRepository) Get(_ context.Context, collection, key string) (document.Document, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.items[collection][key]
	if !ok {
		return document.Document{}, false, nil
	}
	return cloneDocument(doc), true, nil
}

func (r *DocumentRepository) Put(_ context.Context, doc document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.items[doc.Collection]
	if !ok {
		bucket = make(map[string]document.Document)
		r.items[doc.Collection] = bucket
	}
	bucket[doc.Key] = cloneDocument(doc)
	return nil
}

func (r *DocumentRepository) Delete(_ context.Context, collection, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items[collection], key)
	return nil
}

func (r *DocumentRepository) List(_ context.Context, collection string) ([]document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.items[collection]
	out := make([]document.Document, 0, len(bucket))
	for _, doc := range bucket {
		out = append(out, cloneDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *DocumentRepository) DeleteEventBefore(_ context.Context, collection string, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key, doc := range r.items[collection] {
		if doc.EventAt != nil && doc.EventAt.Before(cutoff) {
			delete(r.items[collection], key)
			deleted++
		}
	}
	return deleted, nil
}

func cloneDocument(doc document.Document) document.Document {
	out := doc
	out.Data = append([]byte(nil), doc.Data...)
	if doc.EventAt != nil {
		eventAt := *doc.EventAt
		out.EventAt = &eventAt
	}
	return out
}
