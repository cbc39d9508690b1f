package planning_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/planner"
	"github.com/kitmedia/creator-planner/internal/service/planning"
)

type memSource struct {
	histories  []planner.CreatorHistory
	links      []domain.SimilarityLink
	linksCalls int
}

func (m *memSource) LoadHistories(_ context.Context, _ planning.Filter) ([]planner.CreatorHistory, error) {
	return m.histories, nil
}

func (m *memSource) LoadSimilarityLinks(_ context.Context, _ []int64) ([]domain.SimilarityLink, error) {
	m.linksCalls++
	return m.links, nil
}

func fptr(v float64) *float64 { return &v }

func warmHistory(id int64, acct string) planner.CreatorHistory {
	return planner.CreatorHistory{
		CreatorID: id, AcctID: acct, Name: acct,
		Clicks: []domain.ClickRecord{
			{Date: "2026-08-01", UniqueClicks: 120},
			{Date: "2026-08-02", UniqueClicks: 80},
		},
		Conversions: []domain.ConversionRecord{{Conversions: 8}},
	}
}

func TestGeneratePlanSimpleSkipsLinks(t *testing.T) {
	source := &memSource{histories: []planner.CreatorHistory{warmHistory(1, "a1")}}
	svc := planning.NewService(source, planner.DefaultParams(), 90)

	p, err := svc.GeneratePlan(context.Background(), domain.PlanRequest{
		Budget: 100, CPC: fptr(0.5), HorizonDays: 10,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(p.PickedCreators) != 1 {
		t.Fatalf("placements = %d, want 1", len(p.PickedCreators))
	}
	if source.linksCalls != 0 {
		t.Errorf("similarity links loaded %d times in simple mode, want 0", source.linksCalls)
	}
}

func TestGeneratePlanSmartLoadsLinks(t *testing.T) {
	source := &memSource{
		histories: []planner.CreatorHistory{
			warmHistory(1, "a1"),
			{CreatorID: 2, AcctID: "a2", Name: "a2"},
		},
		links: []domain.SimilarityLink{
			{CreatorID: 2, ComparableID: 1, Score: 0.8, Kind: domain.LinkTopic},
		},
	}
	svc := planning.NewService(source, planner.DefaultParams(), 90)

	p, err := svc.GeneratePlan(context.Background(), domain.PlanRequest{
		Budget: 10000, CPC: fptr(0.5), HorizonDays: 10, UseSmartMatching: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if source.linksCalls != 1 {
		t.Fatalf("similarity links loaded %d times, want 1", source.linksCalls)
	}
	if len(p.PickedCreators) != 2 {
		t.Fatalf("placements = %d, want tier-1 creator plus link-derived one", len(p.PickedCreators))
	}
}

func TestGeneratePlanInvalidRequest(t *testing.T) {
	svc := planning.NewService(&memSource{}, planner.DefaultParams(), 90)

	_, err := svc.GeneratePlan(context.Background(), domain.PlanRequest{Budget: -5, CPC: fptr(0.5)})
	if !errors.Is(err, planner.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
