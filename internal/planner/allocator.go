package planner

import (
	"math"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Allocator runs the greedy budget-spend loop over score-ordered
// candidates. Force-included creators are placed first regardless of
// rank (still bounded by remaining budget); force-excluded creators are
// never placed. The loop stops once the remaining budget cannot buy a
// single click.
type Allocator struct{}

// NewAllocator creates an allocator.
func NewAllocator() *Allocator { return &Allocator{} }

// Allocate assigns spend to candidates in order until the budget is
// exhausted or the list ends. A non-positive budget yields an empty
// selection — a valid degenerate result, not an error.
func (a *Allocator) Allocate(
	candidates []domain.ScoredCandidate,
	budget, cpc float64,
	horizonDays int,
	include, exclude map[string]struct{},
) []domain.PlacementAllocation {
	if budget <= 0 {
		return nil
	}

	// Force-includes jump the queue but keep their relative score order.
	ordered := make([]domain.ScoredCandidate, 0, len(candidates))
	forced := make(map[int64]bool)
	for _, c := range candidates {
		if _, ok := include[c.Creator.AcctID]; ok {
			ordered = append(ordered, c)
			forced[c.Creator.CreatorID] = true
		}
	}
	for _, c := range candidates {
		if !forced[c.Creator.CreatorID] {
			ordered = append(ordered, c)
		}
	}

	remaining := budget
	placed := make(map[int64]bool, len(ordered))
	var selected []domain.PlacementAllocation

	for _, c := range ordered {
		if remaining < cpc {
			break // cannot afford a single click for anyone
		}
		if _, ok := exclude[c.Creator.AcctID]; ok {
			continue
		}
		if placed[c.Creator.CreatorID] {
			continue
		}

		affordable := math.Min(c.ClicksPerDay*float64(horizonDays), remaining/cpc)
		if affordable <= 0 {
			continue
		}

		spend := affordable * cpc
		selected = append(selected, domain.PlacementAllocation{
			CreatorID:           c.Creator.CreatorID,
			AcctID:              c.Creator.AcctID,
			Name:                c.Creator.Name,
			Tier:                c.Tier,
			ExpectedClicks:      affordable,
			ExpectedSpend:       spend,
			ExpectedConversions: affordable * c.ExpectedCVR,
			ExpectedCVR:         c.ExpectedCVR,
			ExpectedCPA:         c.ExpectedCPA,
			ForceIncluded:       forced[c.Creator.CreatorID],
			Rationale:           c.Rationale,
		})
		placed[c.Creator.CreatorID] = true
		remaining -= spend
	}

	return selected
}
