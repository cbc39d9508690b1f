package plan

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kitmedia/creator-planner/internal/domain"
)

// Notifier delivers plan lifecycle notifications. Implementations must
// tolerate being called with a fully-populated saved plan.
type Notifier interface {
	PlanConfirmed(ctx context.Context, p *domain.SavedPlan) error
}

// Service implements saved-plan business logic. All public methods are
// safe for concurrent use if the underlying repository is.
type Service struct {
	repo     Repository
	notifier Notifier // optional
}

// NewService creates a plan service backed by the given repository.
// notifier may be nil; confirmation then skips the email.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Save persists a generated plan as a draft and returns it with its
// assigned ID and timestamps.
func (s *Service) Save(ctx context.Context, userEmail string, req domain.PlanRequest, generated domain.Plan) (*domain.SavedPlan, error) {
	if userEmail == "" {
		return nil, fmt.Errorf("user email is required")
	}

	now := time.Now().UTC()
	p := &domain.SavedPlan{
		ID:        uuid.New().String(),
		UserEmail: userEmail,
		Request:   req,
		Plan:      generated,
		Status:    domain.PlanDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Get returns a single saved plan.
func (s *Service) Get(ctx context.Context, id string) (*domain.SavedPlan, error) {
	return s.repo.Get(ctx, id)
}

// List returns a user's saved plans matching the filter.
func (s *Service) List(ctx context.Context, userEmail string, f ListFilter) ([]domain.SavedPlan, int, error) {
	return s.repo.List(ctx, userEmail, f)
}

// Confirm transitions a draft plan to confirmed and fires the
// confirmation notification. Notification failures are logged, never
// surfaced: the confirmation itself already committed.
func (s *Service) Confirm(ctx context.Context, id string) (*domain.SavedPlan, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PlanConfirmed {
		return nil, ErrAlreadyConfirmed
	}

	now := time.Now().UTC()
	if err := s.repo.Confirm(ctx, id, now); err != nil {
		return nil, fmt.Errorf("confirm plan: %w", err)
	}
	p.Status = domain.PlanConfirmed
	p.ConfirmedAt = &now
	p.UpdatedAt = now

	if s.notifier != nil {
		if err := s.notifier.PlanConfirmed(ctx, p); err != nil {
			log.Printf("[plan.Service] confirmation email for plan %s failed: %v", id, err)
		}
	}

	log.Printf("[plan.Service] Plan %s confirmed by %s", id, p.UserEmail)
	return p, nil
}
