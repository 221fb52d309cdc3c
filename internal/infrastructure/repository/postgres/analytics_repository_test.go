package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRepository_ApplyLocksAndUpdates(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAnalyticsRepository(db)
	created := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO match_analytics (match_id, created_at, last_updated) VALUES ($1, $2, $3) ON CONFLICT (match_id) DO NOTHING",
	)).
		WithArgs("42", now, now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM match_analytics WHERE match_id = $1 FOR UPDATE")).
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows(analyticsColumns).
			AddRow("42", 1, 0, 0, 0, 5, created, created, nil))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE match_analytics SET clicks = $1, time_spent_seconds = $2, page_views = $3, shares = $4, interest_rating = $5, last_updated = $6, last_viewed_at = $7 WHERE match_id = $8",
	)).
		WithArgs(2, 0, 0, 0, 10, now, sqlmock.AnyArg(), "42").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := repo.Apply(context.Background(), "42", analytics.Event{Kind: analytics.EventClick}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Clicks)
	assert.Equal(t, 10, rec.InterestRating)
	assert.True(t, rec.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_ApplyRollsBackOnUpdateFailure(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAnalyticsRepository(db)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO match_analytics")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(analyticsColumns).
			AddRow("42", 0, 0, 0, 0, 0, now, now, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE match_analytics")).
		WillReturnError(fakeErr("pq: deadlock detected"))
	mock.ExpectRollback()

	_, err := repo.Apply(context.Background(), "42", analytics.Event{Kind: analytics.EventShare}, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update analytics match=42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_GetMissing(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM match_analytics WHERE match_id = $1")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := repo.Get(context.Background(), "404")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_ListTrending(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAnalyticsRepository(db)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	since := now.Add(-7 * 24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM match_analytics WHERE last_updated >= $1 ORDER BY interest_rating DESC, last_updated DESC, match_id LIMIT 2",
	)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(analyticsColumns).
			AddRow("B", 8, 0, 0, 0, 40, now, now, now).
			AddRow("C", 5, 0, 0, 0, 25, now, now, nil))

	items, err := repo.ListTrending(context.Background(), since, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].MatchID)
	assert.NotNil(t, items[0].LastViewedAt)
	assert.Equal(t, "C", items[1].MatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepository_DeleteInactiveBefore(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewAnalyticsRepository(db)
	cutoff := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM match_analytics WHERE last_updated < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	purged, err := repo.DeleteInactiveBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 4, purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}
