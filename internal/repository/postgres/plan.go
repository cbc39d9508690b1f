package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/service/plan"
)

// PlanRepo implements plan.Repository against PostgreSQL. Request and
// plan payloads are stored as JSON.
type PlanRepo struct{ db *sql.DB }

// NewPlanRepo creates a Postgres-backed saved-plan repository.
func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

func (r *PlanRepo) Save(ctx context.Context, p *domain.SavedPlan) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	reqJSON, err := json.Marshal(p.Request)
	if err != nil {
		return "", fmt.Errorf("marshal plan request: %w", err)
	}
	planJSON, err := json.Marshal(p.Plan)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO saved_plans (id, user_email, request, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, p.ID, p.UserEmail, reqJSON, planJSON, p.Status, p.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("save plan: %w", err)
	}
	return p.ID, nil
}

func (r *PlanRepo) Get(ctx context.Context, id string) (*domain.SavedPlan, error) {
	var (
		p           domain.SavedPlan
		reqJSON     []byte
		planJSON    []byte
		confirmedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_email, request, plan, status, created_at, updated_at, confirmed_at
		FROM saved_plans
		WHERE id = $1
	`, id).Scan(&p.ID, &p.UserEmail, &reqJSON, &planJSON, &p.Status, &p.CreatedAt, &p.UpdatedAt, &confirmedAt)
	if err == sql.ErrNoRows {
		return nil, plan.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	if err := json.Unmarshal(reqJSON, &p.Request); err != nil {
		return nil, fmt.Errorf("unmarshal plan request: %w", err)
	}
	if err := json.Unmarshal(planJSON, &p.Plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if confirmedAt.Valid {
		p.ConfirmedAt = &confirmedAt.Time
	}
	return &p, nil
}

func (r *PlanRepo) List(ctx context.Context, userEmail string, f plan.ListFilter) ([]domain.SavedPlan, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM saved_plans WHERE user_email = $1`
	countArgs := []interface{}{userEmail}
	if f.Status != "" {
		countQ += ` AND status = $2`
		countArgs = append(countArgs, f.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	q := `
		SELECT id, user_email, request, plan, status, created_at, updated_at, confirmed_at
		FROM saved_plans
		WHERE user_email = $1`
	args := []interface{}{userEmail}
	idx := 2
	if f.Status != "" {
		q += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []domain.SavedPlan
	for rows.Next() {
		var (
			p           domain.SavedPlan
			reqJSON     []byte
			planJSON    []byte
			confirmedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.UserEmail, &reqJSON, &planJSON, &p.Status, &p.CreatedAt, &p.UpdatedAt, &confirmedAt); err != nil {
			return nil, 0, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal(reqJSON, &p.Request); err != nil {
			return nil, 0, fmt.Errorf("unmarshal plan request: %w", err)
		}
		if err := json.Unmarshal(planJSON, &p.Plan); err != nil {
			return nil, 0, fmt.Errorf("unmarshal plan: %w", err)
		}
		if confirmedAt.Valid {
			p.ConfirmedAt = &confirmedAt.Time
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PlanRepo) Confirm(ctx context.Context, id string, confirmedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE saved_plans
		SET status = $1, confirmed_at = $2, updated_at = $2
		WHERE id = $3
	`, domain.PlanConfirmed, confirmedAt, id)
	if err != nil {
		return fmt.Errorf("confirm plan: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return plan.ErrNotFound
	}
	return nil
}
