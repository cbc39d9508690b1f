package plan

import (
	"context"
	"time"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Repository defines the data access contract for saved plans.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Save inserts a new saved plan and returns its ID.
	Save(ctx context.Context, p *domain.SavedPlan) (string, error)

	// Get returns a single saved plan. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.SavedPlan, error)

	// List returns a user's saved plans matching the filter, ordered by
	// created_at DESC, plus the unpaginated total.
	List(ctx context.Context, userEmail string, f ListFilter) ([]domain.SavedPlan, int, error)

	// Confirm transitions a plan to confirmed and stamps the confirmation
	// time. Returns ErrNotFound if the plan doesn't exist.
	Confirm(ctx context.Context, id string, confirmedAt time.Time) error
}

// ListFilter controls pagination and filtering for saved-plan lists.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
