package plan_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/service/plan"
)

// memRepo is an in-memory saved-plan repository for unit testing.
type memRepo struct {
	mu    sync.Mutex
	plans map[string]*domain.SavedPlan
}

func newMemRepo() *memRepo {
	return &memRepo{plans: make(map[string]*domain.SavedPlan)}
}

func (m *memRepo) Save(_ context.Context, p *domain.SavedPlan) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.plans[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*domain.SavedPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, plan.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, userEmail string, f plan.ListFilter) ([]domain.SavedPlan, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SavedPlan
	for _, p := range m.plans {
		if p.UserEmail != userEmail {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *memRepo) Confirm(_ context.Context, id string, confirmedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok {
		return plan.ErrNotFound
	}
	p.Status = domain.PlanConfirmed
	p.ConfirmedAt = &confirmedAt
	return nil
}

// recordingNotifier captures confirmation calls and can simulate failure.
type recordingNotifier struct {
	called int
	fail   bool
}

func (n *recordingNotifier) PlanConfirmed(_ context.Context, _ *domain.SavedPlan) error {
	n.called++
	if n.fail {
		return errors.New("ses unavailable")
	}
	return nil
}

const testEmail = "ops@kitmedia.test"

func testPlan() domain.Plan {
	return domain.Plan{TotalSpend: 100, TotalConversions: 4}
}

func TestSave(t *testing.T) {
	svc := plan.NewService(newMemRepo(), nil)

	p, err := svc.Save(context.Background(), testEmail, domain.PlanRequest{Budget: 100}, testPlan())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected assigned plan id")
	}
	if p.Status != domain.PlanDraft {
		t.Fatalf("expected draft, got %s", p.Status)
	}
}

func TestSaveRequiresEmail(t *testing.T) {
	svc := plan.NewService(newMemRepo(), nil)
	_, err := svc.Save(context.Background(), "", domain.PlanRequest{}, testPlan())
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetNotFound(t *testing.T) {
	svc := plan.NewService(newMemRepo(), nil)
	_, err := svc.Get(context.Background(), "nonexistent")
	if !errors.Is(err, plan.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	svc := plan.NewService(repo, notifier)

	p, _ := svc.Save(context.Background(), testEmail, domain.PlanRequest{Budget: 100}, testPlan())

	confirmed, err := svc.Confirm(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != domain.PlanConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatal("expected confirmation timestamp")
	}
	if notifier.called != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.called)
	}
}

func TestConfirmTwice(t *testing.T) {
	svc := plan.NewService(newMemRepo(), nil)

	p, _ := svc.Save(context.Background(), testEmail, domain.PlanRequest{Budget: 100}, testPlan())
	svc.Confirm(context.Background(), p.ID)

	_, err := svc.Confirm(context.Background(), p.ID)
	if !errors.Is(err, plan.ErrAlreadyConfirmed) {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestConfirmSurvivesNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{fail: true}
	svc := plan.NewService(newMemRepo(), notifier)

	p, _ := svc.Save(context.Background(), testEmail, domain.PlanRequest{Budget: 100}, testPlan())

	confirmed, err := svc.Confirm(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("confirm should not fail on notification error: %v", err)
	}
	if confirmed.Status != domain.PlanConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}
}

func TestListFiltersByUser(t *testing.T) {
	svc := plan.NewService(newMemRepo(), nil)

	svc.Save(context.Background(), testEmail, domain.PlanRequest{Budget: 100}, testPlan())
	svc.Save(context.Background(), "other@kitmedia.test", domain.PlanRequest{Budget: 200}, testPlan())

	list, total, err := svc.List(context.Background(), testEmail, plan.ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 plan, got %d (total %d)", len(list), total)
	}
}
