package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kitmedia/creator-planner/internal/analytics"
)

// LeaderboardRepo implements analytics.Repository against PostgreSQL.
type LeaderboardRepo struct{ db *sql.DB }

// NewLeaderboardRepo creates a Postgres-backed analytics repository.
func NewLeaderboardRepo(db *sql.DB) *LeaderboardRepo { return &LeaderboardRepo{db: db} }

func (r *LeaderboardRepo) Leaderboard(ctx context.Context, f analytics.LeaderboardFilter) ([]analytics.LeaderboardEntry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT cr.id, cr.acct_id, cr.name,
		       COALESCE(k.clicks, 0), COALESCE(v.conversions, 0), COALESCE(k.spend, 0)
		FROM creators cr
		LEFT JOIN (
			SELECT creator_id, SUM(unique_clicks) AS clicks, SUM(spend) AS spend
			FROM placement_clicks
			WHERE click_date >= CURRENT_DATE - make_interval(days => $1)
			GROUP BY creator_id
		) k ON k.creator_id = cr.id
		LEFT JOIN (
			SELECT creator_id, SUM(conversions) AS conversions
			FROM conversions
			WHERE range_end >= CURRENT_DATE - make_interval(days => $1)
			GROUP BY creator_id
		) v ON v.creator_id = cr.id
		WHERE ($2 = '' OR cr.category = $2)
		ORDER BY COALESCE(v.conversions, 0) DESC, COALESCE(k.clicks, 0) DESC, cr.id
		LIMIT $3
	`, f.LookbackDays, f.Category, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var out []analytics.LeaderboardEntry
	for rows.Next() {
		var e analytics.LeaderboardEntry
		if err := rows.Scan(&e.CreatorID, &e.AcctID, &e.Name, &e.Clicks, &e.Conversions, &e.Spend); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		if e.Clicks > 0 {
			e.CVR = float64(e.Conversions) / float64(e.Clicks)
		}
		if e.Conversions > 0 {
			cpa := e.Spend / float64(e.Conversions)
			e.CPA = &cpa
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *LeaderboardRepo) HistoricalTotals(ctx context.Context, lookbackDays int, category string) (int64, int64, error) {
	var clicks, conversions int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((
				SELECT SUM(pc.unique_clicks)
				FROM placement_clicks pc
				JOIN creators cr ON cr.id = pc.creator_id
				WHERE pc.click_date >= CURRENT_DATE - make_interval(days => $1)
				  AND ($2 = '' OR cr.category = $2)
			), 0),
			COALESCE((
				SELECT SUM(cv.conversions)
				FROM conversions cv
				JOIN creators cr ON cr.id = cv.creator_id
				WHERE cv.range_end >= CURRENT_DATE - make_interval(days => $1)
				  AND ($2 = '' OR cr.category = $2)
			), 0)
	`, lookbackDays, category).Scan(&clicks, &conversions)
	if err != nil {
		return 0, 0, fmt.Errorf("historical totals: %w", err)
	}
	return clicks, conversions, nil
}

func (r *LeaderboardRepo) FilterOptions(ctx context.Context) (*analytics.FilterOptions, error) {
	opts := &analytics.FilterOptions{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM creators
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("filter categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		opts.Categories = append(opts.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topicRows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT topic FROM creators
		WHERE topic IS NOT NULL AND topic <> ''
		ORDER BY topic
	`)
	if err != nil {
		return nil, fmt.Errorf("filter topics: %w", err)
	}
	defer topicRows.Close()
	for topicRows.Next() {
		var t string
		if err := topicRows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		opts.Topics = append(opts.Topics, t)
	}
	return opts, topicRows.Err()
}
