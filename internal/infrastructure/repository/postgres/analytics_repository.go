package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	qb "github.com/riskibarqy/matchday-aggregator/internal/platform/querybuilder"
)

type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Apply creates the row if needed, locks it and writes the updated counters
// in one transaction.
func (r *AnalyticsRepository) Apply(ctx context.Context, matchID string, ev analytics.Event, now time.Time) (analytics.Record, error) {
	now = now.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return analytics.Record{}, fmt.Errorf("begin tx apply analytics event: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery, insertArgs, err := qb.InsertInto(analyticsTable).
		Columns("match_id", "created_at", "last_updated").
		Values(matchID, now, now).
		Suffix("ON CONFLICT (match_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return analytics.Record{}, fmt.Errorf("build insert analytics query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return analytics.Record{}, fmt.Errorf("insert analytics match=%s: %w", matchID, err)
	}

	selectQuery, selectArgs, err := qb.Select(analyticsColumns...).From(analyticsTable).
		Where(qb.Eq("match_id", matchID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return analytics.Record{}, fmt.Errorf("build lock analytics query: %w", err)
	}
	var row analyticsTableModel
	if err := tx.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		return analytics.Record{}, fmt.Errorf("lock analytics match=%s: %w", matchID, err)
	}

	rec, err := analytics.ApplyEvent(analyticsFromRow(row), ev, now)
	if err != nil {
		return analytics.Record{}, err
	}

	updateQuery, updateArgs, err := qb.Update(analyticsTable).
		Set("clicks", rec.Clicks).
		Set("time_spent_seconds", rec.TimeSpentSeconds).
		Set("page_views", rec.PageViews).
		Set("shares", rec.Shares).
		Set("interest_rating", rec.InterestRating).
		Set("last_updated", rec.LastUpdated).
		Set("last_viewed_at", rec.LastViewedAt).
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return analytics.Record{}, fmt.Errorf("build update analytics query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return analytics.Record{}, fmt.Errorf("update analytics match=%s: %w", matchID, err)
	}

	if err := tx.Commit(); err != nil {
		return analytics.Record{}, fmt.Errorf("commit apply analytics tx: %w", err)
	}
	return rec, nil
}

func (r *AnalyticsRepository) Get(ctx context.Context, matchID string) (analytics.Record, bool, error) {
	query, args, err := qb.Select(analyticsColumns...).From(analyticsTable).
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return analytics.Record{}, false, fmt.Errorf("build get analytics query: %w", err)
	}

	var row analyticsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return analytics.Record{}, false, nil
		}
		return analytics.Record{}, false, fmt.Errorf("get analytics match=%s: %w", matchID, err)
	}
	return analyticsFromRow(row), true, nil
}

func (r *AnalyticsRepository) ListTrending(ctx context.Context, since time.Time, limit int) ([]analytics.Record, error) {
	query, args, err := qb.Select(analyticsColumns...).From(analyticsTable).
		Where(qb.Gte("last_updated", since.UTC())).
		OrderBy("interest_rating DESC", "last_updated DESC", "match_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list trending query: %w", err)
	}

	var rows []analyticsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list trending analytics: %w", err)
	}

	out := make([]analytics.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, analyticsFromRow(row))
	}
	return out, nil
}

func (r *AnalyticsRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := qb.DeleteFrom(analyticsTable).
		Where(qb.Lt("last_updated", cutoff.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete inactive analytics query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete inactive analytics: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}
