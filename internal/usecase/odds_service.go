package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/odds"
	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/cache"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

const oddsSportsCacheKey = "sports"

// OddsService reads odds through a short in-process cache. Provider
// failures degrade to an empty list or a placeholder event; a rate limit is
// returned to the caller.
type OddsService struct {
	provider   OddsProvider
	normalizer *normalizer.Normalizer
	sports     *cache.Store[odds.SportList]
	events     *cache.Store[odds.Event]
	logger     *logging.Logger
	now        func() time.Time
}

func NewOddsService(provider OddsProvider, norm *normalizer.Normalizer, ttl time.Duration, logger *logging.Logger) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	if norm == nil {
		norm = normalizer.New(logger, nil)
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &OddsService{
		provider:   provider,
		normalizer: norm,
		sports:     cache.NewStore[odds.SportList](ttl),
		events:     cache.NewStore[odds.Event](ttl),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *OddsService) ListSports(ctx context.Context) (odds.SportList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.ListSports")
	defer span.End()

	list, err := s.sports.GetOrLoad(ctx, oddsSportsCacheKey, func(ctx context.Context) (odds.SportList, error) {
		if s.provider == nil {
			return odds.SportList{}, fmt.Errorf("%w: odds provider is not configured", ErrDependencyUnavailable)
		}
		raws, quota, err := s.provider.ListSports(ctx)
		if err != nil {
			return odds.SportList{}, err
		}
		return odds.SportList{Sports: s.normalizer.OddsSports(raws), Quota: quota}, nil
	})
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return odds.SportList{}, err
		}
		s.logger.WarnContext(ctx, "serve empty sports list after upstream failure", "error", err)
		return odds.SportList{Sports: []odds.Sport{}}, nil
	}
	return list, nil
}

func (s *OddsService) GetEventOdds(ctx context.Context, sportKey, eventID string) (odds.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.GetEventOdds")
	defer span.End()

	sportKey = strings.TrimSpace(sportKey)
	eventID = strings.TrimSpace(eventID)
	if sportKey == "" || eventID == "" {
		return odds.Event{}, fmt.Errorf("%w: sport key and event id are required", ErrInvalidInput)
	}

	ev, err := s.events.GetOrLoad(ctx, sportKey+"/"+eventID, func(ctx context.Context) (odds.Event, error) {
		if s.provider == nil {
			return odds.Event{}, fmt.Errorf("%w: odds provider is not configured", ErrDependencyUnavailable)
		}
		raw, err := s.provider.EventOdds(ctx, sportKey, eventID)
		if err != nil {
			return odds.Event{}, err
		}
		return s.normalizer.OddsEvent(raw)
	})
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return odds.Event{}, err
		}
		s.logger.WarnContext(ctx, "serve fallback odds event",
			"sport_key", sportKey,
			"event_id", eventID,
			"error", err,
		)
		return odds.Fallback(sportKey, eventID, s.now()), nil
	}
	return ev, nil
}
