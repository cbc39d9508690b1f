package planner

import (
	"fmt"
	"sort"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Scorer turns the candidate pool into a ranked list. Implementations
// are pure functions over their inputs; the allocator never sees which
// strategy produced the ranking.
type Scorer interface {
	Score(req domain.PlanRequest, pool []domain.CreatorRecord, links []domain.SimilarityLink) []domain.ScoredCandidate
}

// SimpleScorer ranks creators by direct historical performance only:
// ascending expected CPA when the request has a target CPA (creators
// over the ceiling are dropped outright), descending expected CVR
// otherwise.
type SimpleScorer struct {
	params Params
}

// NewSimpleScorer creates the historical-performance-only strategy.
func NewSimpleScorer(params Params) *SimpleScorer {
	return &SimpleScorer{params: params.normalized()}
}

func (s *SimpleScorer) Score(req domain.PlanRequest, pool []domain.CreatorRecord, _ []domain.SimilarityLink) []domain.ScoredCandidate {
	cpc := *req.CPC
	out := make([]domain.ScoredCandidate, 0, len(pool))

	for _, c := range pool {
		cvr := c.Snapshot.ExpectedCVR
		cpa := expectedCPA(cpc, cvr)

		if req.TargetCPA != nil {
			// Hard filter: an undefined CPA can never satisfy a ceiling.
			if cpa == nil || *cpa > *req.TargetCPA {
				continue
			}
		}

		// Conversions per dollar; descending order is equivalent to
		// ascending expected CPA, and reduces to CVR ranking when no
		// target CPA is set (cpc is constant across candidates).
		valueRatio := cvr / cpc

		out = append(out, domain.ScoredCandidate{
			Creator:      c,
			Tier:         domain.TierHistory,
			ExpectedCVR:  cvr,
			ExpectedCPA:  cpa,
			ClicksPerDay: c.Snapshot.ClicksPerDay,
			ValueRatio:   valueRatio,
			Rationale:    "historical performance",
		})
	}

	sortCandidates(out)
	return out
}

// SmartScorer ranks creators through the tiered fallback chain:
//
//	tier 1: own history above the minimum click threshold
//	tier 2: topic-similarity-weighted estimate from tier-1 creators
//	tier 3: demographic alignment against the request's target profile
//	tier 4: embedding-similarity estimate, damped below tier 2
//
// Creators matching no tier are excluded. Tier-1 candidates fully
// exhaust before tier 2 is considered, and so on.
type SmartScorer struct {
	params Params
}

// NewSmartScorer creates the tiered multi-factor strategy.
func NewSmartScorer(params Params) *SmartScorer {
	return &SmartScorer{params: params.normalized()}
}

func (s *SmartScorer) Score(req domain.PlanRequest, pool []domain.CreatorRecord, links []domain.SimilarityLink) []domain.ScoredCandidate {
	cpc := *req.CPC

	// Tier-1 membership first: similarity tiers estimate from these.
	tier1CVR := make(map[int64]float64)
	for _, c := range pool {
		if c.Snapshot.HasHistory() && c.Snapshot.TotalClicks >= s.params.MinTier1Clicks {
			tier1CVR[c.CreatorID] = c.Snapshot.ExpectedCVR
		}
	}

	topicLinks := make(map[int64][]domain.SimilarityLink)
	embeddingLinks := make(map[int64][]domain.SimilarityLink)
	for _, l := range links {
		if _, ok := tier1CVR[l.ComparableID]; !ok {
			continue // only links into creators with trusted history carry signal
		}
		switch l.Kind {
		case domain.LinkTopic:
			topicLinks[l.CreatorID] = append(topicLinks[l.CreatorID], l)
		case domain.LinkEmbedding:
			embeddingLinks[l.CreatorID] = append(embeddingLinks[l.CreatorID], l)
		}
	}

	out := make([]domain.ScoredCandidate, 0, len(pool))
	for _, c := range pool {
		cand, ok := s.scoreOne(c, req, cpc, tier1CVR, topicLinks, embeddingLinks)
		if !ok {
			continue
		}
		out = append(out, cand)
	}

	sortCandidates(out)
	return out
}

func (s *SmartScorer) scoreOne(
	c domain.CreatorRecord,
	req domain.PlanRequest,
	cpc float64,
	tier1CVR map[int64]float64,
	topicLinks, embeddingLinks map[int64][]domain.SimilarityLink,
) (domain.ScoredCandidate, bool) {
	if _, ok := tier1CVR[c.CreatorID]; ok {
		cvr := c.Snapshot.ExpectedCVR
		cpa := expectedCPA(cpc, cvr)
		// The CPA ceiling only binds where we trust the estimate:
		// creators with real history over the target are dropped,
		// similarity-derived guesses are kept and ranked below.
		if req.TargetCPA != nil && (cpa == nil || *cpa > *req.TargetCPA) {
			return domain.ScoredCandidate{}, false
		}
		return domain.ScoredCandidate{
			Creator:      c,
			Tier:         domain.TierHistory,
			ExpectedCVR:  cvr,
			ExpectedCPA:  cpa,
			ClicksPerDay: c.Snapshot.ClicksPerDay,
			ValueRatio:   cvr,
			Rationale:    "historical performance",
		}, true
	}

	if ls := topicLinks[c.CreatorID]; len(ls) > 0 {
		est := similarityEstimate(ls, tier1CVR)
		return s.derived(c, cpc, domain.TierTopic, est, est,
			fmt.Sprintf("topic similarity to %d proven creator(s)", len(ls))), true
	}

	if req.TargetDemographics != nil && !req.TargetDemographics.IsZero() {
		demo := DemographicSimilarity(c.Demographics, *req.TargetDemographics)
		if demo >= s.params.DemographicFloor {
			score := s.params.Tier3Baseline * demo
			return s.derived(c, cpc, domain.TierDemographic, score, c.Snapshot.ExpectedCVR,
				fmt.Sprintf("demographic match (%.2f)", demo)), true
		}
	}

	if ls := embeddingLinks[c.CreatorID]; len(ls) > 0 {
		est := similarityEstimate(ls, tier1CVR) * s.params.Tier4Damping
		return s.derived(c, cpc, domain.TierEmbedding, est, est,
			fmt.Sprintf("embedding similarity to %d proven creator(s)", len(ls))), true
	}

	return domain.ScoredCandidate{}, false
}

func (s *SmartScorer) derived(c domain.CreatorRecord, cpc float64, tier domain.Tier, score, cvr float64, rationale string) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Creator:      c,
		Tier:         tier,
		ExpectedCVR:  cvr,
		ExpectedCPA:  expectedCPA(cpc, cvr),
		ClicksPerDay: c.Snapshot.ClicksPerDay,
		ValueRatio:   score,
		Rationale:    rationale,
	}
}

// similarityEstimate is the mean of similarity-discounted CVRs across a
// creator's links: a single 0.8 link to a 4% CVR creator estimates 3.2%.
func similarityEstimate(links []domain.SimilarityLink, tier1CVR map[int64]float64) float64 {
	var sum float64
	for _, l := range links {
		sum += l.Score * tier1CVR[l.ComparableID]
	}
	return sum / float64(len(links))
}

// expectedCPA is cpc / cvr, or nil when cvr is zero (undefined, not an
// error; undefined CPAs sort after defined ones).
func expectedCPA(cpc, cvr float64) *float64 {
	if cvr <= 0 {
		return nil
	}
	v := cpc / cvr
	return &v
}

// sortCandidates orders candidates deterministically: tier ascending,
// value ratio descending, expected CPA ascending with undefined last,
// creator id ascending. Identical inputs always produce the same plan.
func sortCandidates(cands []domain.ScoredCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.ValueRatio != b.ValueRatio {
			return a.ValueRatio > b.ValueRatio
		}
		switch {
		case a.ExpectedCPA != nil && b.ExpectedCPA == nil:
			return true
		case a.ExpectedCPA == nil && b.ExpectedCPA != nil:
			return false
		case a.ExpectedCPA != nil && b.ExpectedCPA != nil && *a.ExpectedCPA != *b.ExpectedCPA:
			return *a.ExpectedCPA < *b.ExpectedCPA
		}
		return a.Creator.CreatorID < b.Creator.CreatorID
	})
}
