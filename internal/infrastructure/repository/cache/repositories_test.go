package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/infrastructure/repository/memory"
)

type countingRepository struct {
	*memory.DocumentRepository
	gets int
}

func (r *countingRepository) Get(ctx context.Context, collection, key string) (document.Document, bool, error) {
	r.gets++
	return r.DocumentRepository.Get(ctx, collection, key)
}

func TestDocumentRepository_CachesReadsAndMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingRepository{DocumentRepository: memory.NewDocumentRepository()}
	repo := NewDocumentRepository(next, time.Minute)

	for i := 0; i < 3; i++ {
		if _, ok, err := repo.Get(ctx, document.CollectionMatches, "1"); err != nil || ok {
			t.Fatalf("expected cached miss, ok=%v err=%v", ok, err)
		}
	}
	if next.gets != 1 {
		t.Fatalf("expected one backend read, got %d", next.gets)
	}
}

func TestDocumentRepository_PutInvalidatesEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingRepository{DocumentRepository: memory.NewDocumentRepository()}
	repo := NewDocumentRepository(next, time.Minute)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	if _, ok, _ := repo.Get(ctx, document.CollectionMatches, "1"); ok {
		t.Fatalf("expected miss before put")
	}
	if err := repo.Put(ctx, document.Document{
		Collection: document.CollectionMatches,
		Key:        "1",
		Data:       []byte(`{"v":1}`),
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	doc, ok, err := repo.Get(ctx, document.CollectionMatches, "1")
	if err != nil || !ok {
		t.Fatalf("expected hit after put, ok=%v err=%v", ok, err)
	}
	if string(doc.Data) != `{"v":1}` {
		t.Fatalf("unexpected data: %s", doc.Data)
	}

	doc.Data[0] = 'x'
	again, _, _ := repo.Get(ctx, document.CollectionMatches, "1")
	if string(again.Data) != `{"v":1}` {
		t.Fatalf("cached document was mutated through a returned copy: %s", again.Data)
	}
}

func TestDocumentRepository_DeleteEventBeforeDropsCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingRepository{DocumentRepository: memory.NewDocumentRepository()}
	repo := NewDocumentRepository(next, time.Minute)
	past := time.Date(2026, 10, 10, 15, 0, 0, 0, time.UTC)

	if err := repo.Put(ctx, document.Document{
		Collection: document.CollectionMatches,
		Key:        "old",
		Data:       []byte(`{}`),
		UpdatedAt:  past,
		EventAt:    &past,
	}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, document.CollectionMatches, "old"); !ok {
		t.Fatalf("expected hit before purge")
	}

	purged, err := repo.DeleteEventBefore(ctx, document.CollectionMatches, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged document, got %d", purged)
	}
	if _, ok, _ := repo.Get(ctx, document.CollectionMatches, "old"); ok {
		t.Fatalf("expected purged document to be gone from cache")
	}
}
