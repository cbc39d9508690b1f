package planner

import (
	"math"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// AssemblePlan packages allocator output into the reported plan:
// aggregate projections plus a recommended placement count per creator.
//
// medianPlacementClicks is computed once across the request's tier-1
// candidates; with no usable median every placement recommendation
// floors at 1. BlendedCPA stays nil when no conversions are projected.
func AssemblePlan(placements []domain.PlacementAllocation, budget, medianPlacementClicks float64) *domain.Plan {
	plan := &domain.Plan{
		PickedCreators: make([]domain.PlacementAllocation, len(placements)),
	}

	for i, p := range placements {
		p.RecommendedPlacements = recommendedPlacements(p.ExpectedClicks, medianPlacementClicks)
		plan.PickedCreators[i] = p
		plan.TotalSpend += p.ExpectedSpend
		plan.TotalConversions += p.ExpectedConversions
	}

	if plan.TotalConversions > 0 {
		cpa := plan.TotalSpend / plan.TotalConversions
		plan.BlendedCPA = &cpa
	}

	if budget > 0 {
		plan.BudgetUtilization = plan.TotalSpend / budget
		if plan.BudgetUtilization > 1 {
			plan.BudgetUtilization = 1
		}
		if plan.BudgetUtilization < 0 {
			plan.BudgetUtilization = 0
		}
	}

	return plan
}

func recommendedPlacements(expectedClicks, medianPlacementClicks float64) int {
	if medianPlacementClicks <= 0 {
		return 1
	}
	n := int(math.Round(expectedClicks / medianPlacementClicks))
	if n < 1 {
		return 1
	}
	return n
}
