// Package postgres implements the repository interfaces against
// PostgreSQL with raw SQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/planner"
	"github.com/kitmedia/creator-planner/internal/service/planning"
)

// CreatorRepo loads the candidate pool for a planning run: creator rows,
// their click/conversion history, and similarity links. The planner core
// never touches the database; everything is loaded up front.
type CreatorRepo struct{ db *sql.DB }

// NewCreatorRepo creates a Postgres-backed creator repository.
func NewCreatorRepo(db *sql.DB) *CreatorRepo { return &CreatorRepo{db: db} }

// LoadHistories returns every in-scope creator with its raw click and
// conversion rows over the lookback window, ready for aggregation.
func (r *CreatorRepo) LoadHistories(ctx context.Context, f planning.Filter) ([]planner.CreatorHistory, error) {
	if f.LookbackDays <= 0 {
		f.LookbackDays = 90
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, acct_id, name, COALESCE(topic,''),
		       COALESCE(age_range,''), COALESCE(gender_skew,''),
		       COALESCE(location,''), COALESCE(interests,'')
		FROM creators
		WHERE ($1 = '' OR category = $1)
		ORDER BY id
	`, f.Category)
	if err != nil {
		return nil, fmt.Errorf("load creators: %w", err)
	}
	defer rows.Close()

	var histories []planner.CreatorHistory
	index := make(map[int64]int)
	for rows.Next() {
		var h planner.CreatorHistory
		if err := rows.Scan(
			&h.CreatorID, &h.AcctID, &h.Name, &h.Topic,
			&h.Demographics.AgeRange, &h.Demographics.GenderSkew,
			&h.Demographics.Location, &h.Demographics.Interests,
		); err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		index[h.CreatorID] = len(histories)
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creators: %w", err)
	}
	if len(histories) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(histories))
	for _, h := range histories {
		ids = append(ids, h.CreatorID)
	}

	if err := r.loadClicks(ctx, ids, f.LookbackDays, histories, index); err != nil {
		return nil, err
	}
	if err := r.loadConversions(ctx, ids, f.LookbackDays, histories, index); err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *CreatorRepo) loadClicks(ctx context.Context, ids []int64, lookbackDays int, histories []planner.CreatorHistory, index map[int64]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT creator_id, to_char(click_date, 'YYYY-MM-DD'), unique_clicks
		FROM placement_clicks
		WHERE creator_id = ANY($1)
		  AND click_date >= CURRENT_DATE - make_interval(days => $2)
		ORDER BY creator_id, click_date
	`, pq.Array(ids), lookbackDays)
	if err != nil {
		return fmt.Errorf("load clicks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var creatorID int64
		var rec domain.ClickRecord
		if err := rows.Scan(&creatorID, &rec.Date, &rec.UniqueClicks); err != nil {
			return fmt.Errorf("scan click row: %w", err)
		}
		if i, ok := index[creatorID]; ok {
			histories[i].Clicks = append(histories[i].Clicks, rec)
		}
	}
	return rows.Err()
}

func (r *CreatorRepo) loadConversions(ctx context.Context, ids []int64, lookbackDays int, histories []planner.CreatorHistory, index map[int64]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT creator_id, to_char(range_start, 'YYYY-MM-DD'),
		       to_char(range_end, 'YYYY-MM-DD'), conversions
		FROM conversions
		WHERE creator_id = ANY($1)
		  AND range_end >= CURRENT_DATE - make_interval(days => $2)
		ORDER BY creator_id, range_start
	`, pq.Array(ids), lookbackDays)
	if err != nil {
		return fmt.Errorf("load conversions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var creatorID int64
		var rec domain.ConversionRecord
		if err := rows.Scan(&creatorID, &rec.RangeStart, &rec.RangeEnd, &rec.Conversions); err != nil {
			return fmt.Errorf("scan conversion row: %w", err)
		}
		if i, ok := index[creatorID]; ok {
			histories[i].Conversions = append(histories[i].Conversions, rec)
		}
	}
	return rows.Err()
}

// LoadSimilarityLinks returns the precomputed similarity links for the
// given creators.
func (r *CreatorRepo) LoadSimilarityLinks(ctx context.Context, creatorIDs []int64) ([]domain.SimilarityLink, error) {
	if len(creatorIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT creator_id, comparable_creator_id, similarity_score, kind
		FROM creator_similarities
		WHERE creator_id = ANY($1)
		ORDER BY creator_id, comparable_creator_id
	`, pq.Array(creatorIDs))
	if err != nil {
		return nil, fmt.Errorf("load similarity links: %w", err)
	}
	defer rows.Close()

	var links []domain.SimilarityLink
	for rows.Next() {
		var l domain.SimilarityLink
		if err := rows.Scan(&l.CreatorID, &l.ComparableID, &l.Score, &l.Kind); err != nil {
			return nil, fmt.Errorf("scan similarity link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
