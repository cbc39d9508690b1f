package planner

import (
	"fmt"
	"sort"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Engine orchestrates one planning run: validate the request, rank the
// pool with the strategy the request asks for, run the greedy
// allocation, and assemble the reported plan.
type Engine struct {
	params    Params
	simple    *SimpleScorer
	smart     *SmartScorer
	allocator *Allocator
}

// New creates a planning engine with the given tunables.
func New(params Params) *Engine {
	p := params.normalized()
	return &Engine{
		params:    p,
		simple:    NewSimpleScorer(p),
		smart:     NewSmartScorer(p),
		allocator: NewAllocator(),
	}
}

// GeneratePlan produces a plan for the request from a read-only snapshot
// of candidate creators and (optionally) their similarity links.
//
// The only error class is ErrInvalidRequest; sparse data and empty
// candidate pools resolve to valid (possibly empty) plans. A zero budget
// returns an empty plan rather than an error.
func (e *Engine) GeneratePlan(req domain.PlanRequest, pool []domain.CreatorRecord, links []domain.SimilarityLink) (*domain.Plan, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}
	if req.HorizonDays <= 0 {
		req.HorizonDays = e.params.DefaultHorizonDays
	}
	if req.Budget == 0 {
		return AssemblePlan(nil, 0, 0), nil
	}

	var scorer Scorer = e.simple
	if req.UseSmartMatching {
		scorer = e.smart
	}
	candidates := scorer.Score(req, pool, links)

	include := acctIDSet(req.IncludeAcctIDs)
	exclude := acctIDSet(req.ExcludeAcctIDs)
	candidates = append(candidates, e.forcedCandidates(req, pool, candidates, include)...)

	placements := e.allocator.Allocate(candidates, req.Budget, *req.CPC, req.HorizonDays, include, exclude)

	return AssemblePlan(placements, req.Budget, tier1MedianClicks(candidates)), nil
}

func (e *Engine) validate(req domain.PlanRequest) error {
	if req.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidRequest)
	}
	if req.CPC == nil || *req.CPC <= 0 {
		return fmt.Errorf("%w: cpc is required and must be positive", ErrInvalidRequest)
	}
	if req.TargetCPA != nil && *req.TargetCPA <= 0 {
		return fmt.Errorf("%w: target_cpa must be positive when set", ErrInvalidRequest)
	}
	return nil
}

// forcedCandidates synthesizes candidates for force-included creators the
// scorer filtered out (CPA ceiling or tier miss). They still consume
// budget like everyone else; the allocator places them first.
func (e *Engine) forcedCandidates(
	req domain.PlanRequest,
	pool []domain.CreatorRecord,
	scored []domain.ScoredCandidate,
	include map[string]struct{},
) []domain.ScoredCandidate {
	if len(include) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(scored))
	for _, c := range scored {
		seen[c.Creator.AcctID] = true
	}

	var out []domain.ScoredCandidate
	for _, c := range pool {
		if _, ok := include[c.AcctID]; !ok || seen[c.AcctID] {
			continue
		}
		tier := domain.TierHistory
		if !c.Snapshot.HasHistory() {
			tier = domain.TierDemographic
		}
		out = append(out, domain.ScoredCandidate{
			Creator:      c,
			Tier:         tier,
			ExpectedCVR:  c.Snapshot.ExpectedCVR,
			ExpectedCPA:  expectedCPA(*req.CPC, c.Snapshot.ExpectedCVR),
			ClicksPerDay: c.Snapshot.ClicksPerDay,
			Rationale:    "force included",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creator.CreatorID < out[j].Creator.CreatorID })
	return out
}

// tier1MedianClicks computes the median clicks-per-placement across the
// request's tier-1 candidates, shared by every placement recommendation
// in the same plan.
func tier1MedianClicks(candidates []domain.ScoredCandidate) float64 {
	var tier1 []domain.CreatorRecord
	for _, c := range candidates {
		if c.Tier == domain.TierHistory {
			tier1 = append(tier1, c.Creator)
		}
	}
	return MedianPlacementClicks(tier1)
}

func acctIDSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}
