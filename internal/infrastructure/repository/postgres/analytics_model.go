package postgres

import (
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/analytics"
)

const analyticsTable = "match_analytics"

var analyticsColumns = []string{
	"match_id",
	"clicks",
	"time_spent_seconds",
	"page_views",
	"shares",
	"interest_rating",
	"created_at",
	"last_updated",
	"last_viewed_at",
}

type analyticsTableModel struct {
	MatchID          string     `db:"match_id"`
	Clicks           int        `db:"clicks"`
	TimeSpentSeconds int        `db:"time_spent_seconds"`
	PageViews        int        `db:"page_views"`
	Shares           int        `db:"shares"`
	InterestRating   int        `db:"interest_rating"`
	CreatedAt        time.Time  `db:"created_at"`
	LastUpdated      time.Time  `db:"last_updated"`
	LastViewedAt     *time.Time `db:"last_viewed_at"`
}

func analyticsFromRow(row analyticsTableModel) analytics.Record {
	rec := analytics.Record{
		MatchID:          row.MatchID,
		Clicks:           row.Clicks,
		TimeSpentSeconds: row.TimeSpentSeconds,
		PageViews:        row.PageViews,
		Shares:           row.Shares,
		InterestRating:   row.InterestRating,
		CreatedAt:        row.CreatedAt.UTC(),
		LastUpdated:      row.LastUpdated.UTC(),
	}
	if row.LastViewedAt != nil {
		viewed := row.LastViewedAt.UTC()
		rec.LastViewedAt = &viewed
	}
	return rec
}
