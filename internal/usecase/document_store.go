package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/envelope"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

// loadEnvelope returns nil when the document is absent or unreadable.
// Unreadable documents are logged and treated as a miss.
func loadEnvelope[T any](
	ctx context.Context,
	repo document.Repository,
	logger *logging.Logger,
	collection, key string,
) (*envelope.Envelope[T], error) {
	doc, ok, err := repo.Get(ctx, collection, key)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", document.Path(collection, key), err)
	}
	if !ok {
		return nil, nil
	}

	env, err := envelope.Decode[T](doc.Data)
	if err != nil {
		logger.WarnContext(ctx, "discard unreadable cache document",
			"collection", collection,
			"key", key,
			"error", err,
		)
		return nil, nil
	}
	return &env, nil
}

// saveEnvelope writes payload and stamp as one document.
func saveEnvelope[T any](
	ctx context.Context,
	repo document.Repository,
	collection, key string,
	payload T,
	now time.Time,
	eventAt *time.Time,
) (envelope.Envelope[T], error) {
	env := envelope.New(payload, now)
	raw, err := envelope.Encode(env)
	if err != nil {
		return envelope.Envelope[T]{}, err
	}

	doc := document.Document{
		Collection: collection,
		Key:        key,
		Data:       raw,
		UpdatedAt:  env.UpdatedAt,
		EventAt:    eventAt,
	}
	if err := repo.Put(ctx, doc); err != nil {
		return envelope.Envelope[T]{}, fmt.Errorf("put document %s: %w", doc.Path(), err)
	}
	return env, nil
}

func loadMatchRecord(ctx context.Context, repo document.Repository, logger *logging.Logger, matchID string) (match.Record, bool, error) {
	env, err := loadEnvelope[match.Record](ctx, repo, logger, document.CollectionMatches, matchID)
	if err != nil {
		return match.Record{}, false, err
	}
	if env == nil {
		return match.Record{}, false, nil
	}
	return env.Payload, true, nil
}

func saveMatchRecord(ctx context.Context, repo document.Repository, rec match.Record, now time.Time) error {
	var eventAt *time.Time
	if !rec.Match.KickoffAt.IsZero() {
		kickoff := rec.Match.KickoffAt.UTC()
		eventAt = &kickoff
	}
	_, err := saveEnvelope(ctx, repo, document.CollectionMatches, rec.Match.ID, rec, now, eventAt)
	return err
}
