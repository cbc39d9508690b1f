package domain

import "time"

// PlanRequest is the structured input for one planning run. The caller
// (HTTP layer) resolves rate-card references and comma-separated acct id
// lists before the request reaches the planner core.
type PlanRequest struct {
	AdvertiserID *int64  `json:"advertiser_id,omitempty"`
	Category     string  `json:"category,omitempty"`
	Budget       float64 `json:"budget"`
	// TargetCPA is the cost-per-acquisition ceiling. Absent means "rank
	// by CVR, no CPA ceiling".
	TargetCPA *float64 `json:"target_cpa,omitempty"`
	// CPC is the cost-per-click assumption for the horizon. Required by
	// the time the request reaches the planner (resolved from a rate
	// card upstream when not given explicitly).
	CPC         *float64 `json:"cpc,omitempty"`
	HorizonDays int      `json:"horizon_days,omitempty"` // default 30
	// AdvertiserAvgCVR is the advertiser-level average conversion rate,
	// used as the CVR estimate for creators with no history.
	AdvertiserAvgCVR *float64 `json:"advertiser_avg_cvr,omitempty"`
	UseSmartMatching bool     `json:"use_smart_matching,omitempty"`
	// TargetDemographics enables tier-3 demographic scoring in smart mode.
	TargetDemographics *DemographicProfile `json:"target_demographics,omitempty"`
	// IncludeAcctIDs force-include creators regardless of score;
	// ExcludeAcctIDs force-omit them regardless of score.
	IncludeAcctIDs []string `json:"include_acct_ids,omitempty"`
	ExcludeAcctIDs []string `json:"exclude_acct_ids,omitempty"`
}

// Tier identifies which fallback level produced a candidate's estimate.
type Tier int

const (
	TierHistory     Tier = 1 // own historical performance
	TierTopic       Tier = 2 // topic-similarity-derived estimate
	TierDemographic Tier = 3 // demographic-alignment-derived estimate
	TierEmbedding   Tier = 4 // embedding-similarity-derived estimate
)

// ScoredCandidate is a creator augmented with ranking metrics. ValueRatio
// is the sort key within a tier; ExpectedCPA is nil when ExpectedCVR is
// zero (undefined, sorts last).
type ScoredCandidate struct {
	Creator      CreatorRecord `json:"creator"`
	Tier         Tier          `json:"tier"`
	ExpectedCVR  float64       `json:"expected_cvr"`
	ExpectedCPA  *float64      `json:"expected_cpa,omitempty"`
	ClicksPerDay float64       `json:"clicks_per_day"`
	ValueRatio   float64       `json:"value_ratio"`
	Rationale    string        `json:"rationale,omitempty"`
}

// PlacementAllocation is one creator's assigned slice of a plan.
type PlacementAllocation struct {
	CreatorID             int64    `json:"creator_id"`
	AcctID                string   `json:"acct_id"`
	Name                  string   `json:"name"`
	Tier                  Tier     `json:"tier"`
	ExpectedClicks        float64  `json:"expected_clicks"`
	ExpectedSpend         float64  `json:"expected_spend"`
	ExpectedConversions   float64  `json:"expected_conversions"`
	ExpectedCVR           float64  `json:"expected_cvr"`
	ExpectedCPA           *float64 `json:"expected_cpa,omitempty"`
	RecommendedPlacements int      `json:"recommended_placements"`
	ForceIncluded         bool     `json:"force_included,omitempty"`
	Rationale             string   `json:"rationale,omitempty"`
}

// Plan is the output of one planning run: ordered placements plus
// aggregate projections. BlendedCPA is nil when no conversions are
// projected — an explicit "N/A" signal, not zero.
type Plan struct {
	PickedCreators    []PlacementAllocation `json:"picked_creators"`
	TotalSpend        float64               `json:"total_spend"`
	TotalConversions  float64               `json:"total_conversions"`
	BlendedCPA        *float64              `json:"blended_cpa"`
	BudgetUtilization float64               `json:"budget_utilization"`
}

// PlanStatus is the lifecycle state of a saved plan.
type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanConfirmed PlanStatus = "confirmed"
)

// SavedPlan is a persisted planning run: the request that produced it,
// the generated plan, and its lifecycle state.
type SavedPlan struct {
	ID          string      `json:"plan_id"`
	UserEmail   string      `json:"user_email"`
	Request     PlanRequest `json:"plan_request"`
	Plan        Plan        `json:"plan_data"`
	Status      PlanStatus  `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ConfirmedAt *time.Time  `json:"confirmed_at,omitempty"`
}
