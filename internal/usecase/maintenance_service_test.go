package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/infrastructure/repository/memory"
	documentmock "github.com/riskibarqy/matchday-aggregator/internal/mocks/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestMaintenanceService_PurgePastMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	docs := memory.NewDocumentRepository()
	svc := NewMaintenanceService(docs, nil, logging.NewNop())
	svc.now = fixedNow

	kickoffs := map[string]time.Time{
		"yesterday": fixedNow().Add(-24 * time.Hour),
		"earlier":   time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC),
		"tomorrow":  fixedNow().Add(24 * time.Hour),
	}
	for id, kickoff := range kickoffs {
		rec := match.Record{Match: match.Match{ID: id, KickoffAt: kickoff}}
		if err := saveMatchRecord(ctx, docs, rec, fixedNow()); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	if got := svc.PurgePastMatches(ctx); got != 1 {
		t.Fatalf("expected only the match before today to be purged, got %d", got)
	}
	if _, ok, _ := docs.Get(ctx, document.CollectionMatches, "earlier"); !ok {
		t.Fatalf("match kicking off earlier today must be kept")
	}
}

func TestMaintenanceService_RunCleanupUsingMockery(t *testing.T) {
	t.Parallel()

	docs := documentmock.NewRepository(t)
	svc := NewMaintenanceService(docs, nil, logging.NewNop())
	svc.now = fixedNow
	startOfDay := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	docs.
		On("DeleteEventBefore", mock.Anything, document.CollectionMatches, startOfDay).
		Return(0, errors.New("statement timeout")).
		Once()

	report := svc.RunCleanup(context.Background())
	if report.PurgedMatches != 0 || report.PurgedAnalytics != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
