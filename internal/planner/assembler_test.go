package planner

import (
	"math"
	"testing"

	"github.com/kitmedia/creator-planner/internal/domain"
)

func TestAssemblePlanTotals(t *testing.T) {
	placements := []domain.PlacementAllocation{
		{CreatorID: 1, ExpectedClicks: 200, ExpectedSpend: 100, ExpectedConversions: 10},
		{CreatorID: 2, ExpectedClicks: 100, ExpectedSpend: 50, ExpectedConversions: 2},
	}

	plan := AssemblePlan(placements, 200, 100)

	if plan.TotalSpend != 150 {
		t.Errorf("TotalSpend = %v, want 150", plan.TotalSpend)
	}
	if plan.TotalConversions != 12 {
		t.Errorf("TotalConversions = %v, want 12", plan.TotalConversions)
	}
	if plan.BlendedCPA == nil || math.Abs(*plan.BlendedCPA-12.5) > 1e-9 {
		t.Errorf("BlendedCPA = %v, want 12.5", plan.BlendedCPA)
	}
	if plan.BudgetUtilization != 0.75 {
		t.Errorf("BudgetUtilization = %v, want 0.75", plan.BudgetUtilization)
	}
}

func TestAssemblePlanUndefinedBlendedCPA(t *testing.T) {
	placements := []domain.PlacementAllocation{
		{CreatorID: 1, ExpectedSpend: 100, ExpectedConversions: 0},
	}

	plan := AssemblePlan(placements, 100, 0)

	if plan.BlendedCPA != nil {
		t.Errorf("BlendedCPA = %v, want nil with zero conversions", *plan.BlendedCPA)
	}
}

func TestAssemblePlanEmpty(t *testing.T) {
	plan := AssemblePlan(nil, 0, 0)

	if len(plan.PickedCreators) != 0 {
		t.Errorf("PickedCreators = %v, want empty", plan.PickedCreators)
	}
	if plan.TotalSpend != 0 || plan.TotalConversions != 0 || plan.BudgetUtilization != 0 {
		t.Errorf("empty plan has nonzero totals: %+v", plan)
	}
	if plan.BlendedCPA != nil {
		t.Error("BlendedCPA should be nil for an empty plan")
	}
}

func TestRecommendedPlacements(t *testing.T) {
	tests := []struct {
		clicks, median float64
		want           int
	}{
		{120, 50, 2}, // round(2.4)
		{130, 50, 3}, // round(2.6)
		{10, 50, 1},  // floors at one placement
		{0, 50, 1},
		{500, 0, 1}, // no cohort median: flat recommendation
	}
	for _, tt := range tests {
		if got := recommendedPlacements(tt.clicks, tt.median); got != tt.want {
			t.Errorf("recommendedPlacements(%v, %v) = %d, want %d", tt.clicks, tt.median, got, tt.want)
		}
	}
}

func TestAssemblePlanUtilizationClamped(t *testing.T) {
	placements := []domain.PlacementAllocation{
		{CreatorID: 1, ExpectedSpend: 150.0000001, ExpectedConversions: 1},
	}

	plan := AssemblePlan(placements, 150, 0)

	if plan.BudgetUtilization != 1 {
		t.Errorf("BudgetUtilization = %v, want clamp to 1", plan.BudgetUtilization)
	}
}
