package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/envelope"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

type TrackInput struct {
	MatchID   string `json:"matchId" validate:"required,max=128"`
	Event     string `json:"event" validate:"required"`
	TimeSpent int    `json:"timeSpent" validate:"lte=86400"`
}

const (
	trackStatusApplied = "applied"
	trackStatusFailed  = "failed"

	snapshotLockStripes = 64
)

type TrackBatchItem struct {
	Index   int               `json:"index"`
	MatchID string            `json:"matchId"`
	Status  string            `json:"status"`
	Record  *analytics.Record `json:"record,omitempty"`
	Message string            `json:"message,omitempty"`
}

type TrackBatchResult struct {
	Applied int              `json:"applied"`
	Failed  int              `json:"failed"`
	Items   []TrackBatchItem `json:"items"`
}

// InterestService ingests interaction events and answers trending queries.
type InterestService struct {
	repo     analytics.Repository
	docs     document.Repository
	validate *validator.Validate
	cfg      CacheConfig
	logger   *logging.Logger
	now      func() time.Time

	// snapshotLocks serialize apply and snapshot write per match.
	snapshotLocks [snapshotLockStripes]sync.Mutex
}

func NewInterestService(repo analytics.Repository, docs document.Repository, cfg CacheConfig, logger *logging.Logger) *InterestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InterestService{
		repo:     repo,
		docs:     docs,
		validate: validator.New(),
		cfg:      normalizeCacheConfig(cfg),
		logger:   logger,
		now:      time.Now,
	}
}

// Track applies one event atomically and refreshes the interest snapshot.
func (s *InterestService) Track(ctx context.Context, input TrackInput) (analytics.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InterestService.Track")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.TimeSpent < 0 {
		input.TimeSpent = 0
	}
	if err := s.validate.Struct(input); err != nil {
		return analytics.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	kind, err := analytics.ParseEventKind(input.Event)
	if err != nil {
		return analytics.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lock := s.snapshotLock(input.MatchID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now().UTC()
	rec, err := s.repo.Apply(ctx, input.MatchID, analytics.Event{Kind: kind, TimeSpent: input.TimeSpent}, now)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownEvent) {
			return analytics.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return analytics.Record{}, fmt.Errorf("apply analytics event: %w", err)
	}

	s.writeSnapshot(ctx, rec, now)
	return rec, nil
}

func (s *InterestService) snapshotLock(matchID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(matchID))
	return &s.snapshotLocks[h.Sum32()%snapshotLockStripes]
}

// writeSnapshot never lowers a stored rating; ratings only grow between cleanups.
func (s *InterestService) writeSnapshot(ctx context.Context, rec analytics.Record, now time.Time) {
	if s.docs == nil {
		return
	}
	stored, err := loadEnvelope[analytics.Snapshot](ctx, s.docs, s.logger, document.CollectionInterest, rec.MatchID)
	if err != nil {
		s.logger.WarnContext(ctx, "read interest snapshot failed", "match_id", rec.MatchID, "error", err)
	}
	if stored != nil && stored.Payload.InterestRating > rec.InterestRating {
		return
	}
	if _, err := saveEnvelope(ctx, s.docs, document.CollectionInterest, rec.MatchID, rec.Snapshot(), now, nil); err != nil {
		s.logger.WarnContext(ctx, "write interest snapshot failed", "match_id", rec.MatchID, "error", err)
	}
}

// TrackBatch applies events concurrently. Failures are reported per item and
// never abort the batch.
func (s *InterestService) TrackBatch(ctx context.Context, inputs []TrackInput) (TrackBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InterestService.TrackBatch")
	defer span.End()

	result := TrackBatchResult{Items: make([]TrackBatchItem, len(inputs))}
	if len(inputs) == 0 {
		return result, nil
	}

	workerCount := s.cfg.WriteWorkers
	if workerCount > len(inputs) {
		workerCount = len(inputs)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return TrackBatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var applied atomic.Int32
	var failed atomic.Int32
	var wg sync.WaitGroup
	for i, input := range inputs {
		i, input := i, input
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			item := TrackBatchItem{Index: i, MatchID: strings.TrimSpace(input.MatchID)}
			rec, err := s.Track(ctx, input)
			if err != nil {
				failed.Add(1)
				item.Status = trackStatusFailed
				item.Message = err.Error()
			} else {
				applied.Add(1)
				item.Status = trackStatusApplied
				item.Record = &rec
			}
			result.Items[i] = item
		}); err != nil {
			wg.Done()
			wg.Wait()
			return TrackBatchResult{}, fmt.Errorf("submit analytics event to worker pool: %w", err)
		}
	}
	wg.Wait()

	result.Applied = int(applied.Load())
	result.Failed = int(failed.Load())
	return result, nil
}

func (s *InterestService) Get(ctx context.Context, matchID string) (analytics.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InterestService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return analytics.Record{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	rec, ok, err := s.repo.Get(ctx, matchID)
	if err != nil {
		return analytics.Record{}, fmt.Errorf("get analytics: %w", err)
	}
	if !ok {
		return analytics.Record{}, fmt.Errorf("%w: analytics for match=%s", ErrNotFound, matchID)
	}
	return rec, nil
}

// Snapshot reads interest/{matchID}. Snapshots older than the trending
// window are ignored.
func (s *InterestService) Snapshot(ctx context.Context, matchID string) (*analytics.Snapshot, error) {
	if s.docs == nil {
		return nil, nil
	}
	env, err := loadEnvelope[analytics.Snapshot](ctx, s.docs, s.logger, document.CollectionInterest, matchID)
	if err != nil {
		return nil, err
	}
	policy := envelope.Policy{Now: s.now}
	if !envelope.IsFresh(policy, env, s.cfg.TrendingWindow) {
		return nil, nil
	}
	snapshot := env.Payload
	return &snapshot, nil
}

// Trending lists records updated inside the trending window by rating.
func (s *InterestService) Trending(ctx context.Context, limit int) ([]analytics.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InterestService.Trending")
	defer span.End()

	if limit <= 0 {
		limit = s.cfg.TrendingDefaultLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	since := s.now().UTC().Add(-s.cfg.TrendingWindow)
	records, err := s.repo.ListTrending(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list trending analytics: %w", err)
	}
	return records, nil
}

// CleanupInactive deletes records idle past the retention period. Errors
// are logged and reported as zero deletions.
func (s *InterestService) CleanupInactive(ctx context.Context) int {
	ctx, span := startUsecaseSpan(ctx, "usecase.InterestService.CleanupInactive")
	defer span.End()

	cutoff := s.now().UTC().Add(-s.cfg.AnalyticsRetention)
	deleted, err := s.repo.DeleteInactiveBefore(ctx, cutoff)
	if err != nil {
		s.logger.WarnContext(ctx, "cleanup inactive analytics failed", "cutoff", cutoff, "error", err)
		return 0
	}
	s.purgeSnapshots(ctx, cutoff)
	return deleted
}

// purgeSnapshots drops interest/{id} documents not rewritten since cutoff.
func (s *InterestService) purgeSnapshots(ctx context.Context, cutoff time.Time) {
	if s.docs == nil {
		return
	}
	docs, err := s.docs.List(ctx, document.CollectionInterest)
	if err != nil {
		s.logger.WarnContext(ctx, "list interest snapshots failed", "error", err)
		return
	}

	purged := 0
	for _, doc := range docs {
		if !doc.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.docs.Delete(ctx, doc.Collection, doc.Key); err != nil {
			s.logger.WarnContext(ctx, "delete interest snapshot failed", "match_id", doc.Key, "error", err)
			continue
		}
		purged++
	}
	if purged > 0 {
		s.logger.InfoContext(ctx, "purged stale interest snapshots", "count", purged, "cutoff", cutoff)
	}
}
