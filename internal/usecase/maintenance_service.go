package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

type CleanupReport struct {
	PurgedMatches   int `json:"purgedMatches"`
	PurgedAnalytics int `json:"purgedAnalytics"`
}

// MaintenanceService runs the background purges. Failures never surface:
// they are logged and counted as zero.
type MaintenanceService struct {
	docs     document.Repository
	interest *InterestService
	logger   *logging.Logger
	now      func() time.Time
}

func NewMaintenanceService(docs document.Repository, interest *InterestService, logger *logging.Logger) *MaintenanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MaintenanceService{
		docs:     docs,
		interest: interest,
		logger:   logger,
		now:      time.Now,
	}
}

// PurgePastMatches deletes stored matches that kicked off before today (UTC).
func (s *MaintenanceService) PurgePastMatches(ctx context.Context) int {
	ctx, span := startUsecaseSpan(ctx, "usecase.MaintenanceService.PurgePastMatches")
	defer span.End()

	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	deleted, err := s.docs.DeleteEventBefore(ctx, document.CollectionMatches, startOfDay)
	if err != nil {
		s.logger.WarnContext(ctx, "purge past matches failed", "cutoff", startOfDay, "error", err)
		return 0
	}
	return deleted
}

func (s *MaintenanceService) RunCleanup(ctx context.Context) CleanupReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.MaintenanceService.RunCleanup")
	defer span.End()

	report := CleanupReport{PurgedMatches: s.PurgePastMatches(ctx)}
	if s.interest != nil {
		report.PurgedAnalytics = s.interest.CleanupInactive(ctx)
	}
	s.logger.InfoContext(ctx, "cleanup finished",
		"purged_matches", report.PurgedMatches,
		"purged_analytics", report.PurgedAnalytics,
	)
	return report
}
