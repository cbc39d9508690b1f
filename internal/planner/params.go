package planner

// Params holds the planner's tunable constants. Values come from config,
// never from buried literals, so the fallback policy is visible and
// adjustable per deployment.
type Params struct {
	// DefaultCVR is the conversion rate assumed for a creator with no
	// history when the request carries no advertiser average.
	DefaultCVR float64
	// MinTier1Clicks is the click history a creator needs before its own
	// CVR is trusted for tier-1 scoring.
	MinTier1Clicks int64
	// Tier3Baseline is the score ceiling for demographic-only matches.
	// It must sit below realistic tier-2 scores so demographic guesses
	// never outrank similarity-derived estimates.
	Tier3Baseline float64
	// Tier4Damping discounts embedding-similarity estimates relative to
	// topic-similarity ones (weaker signal).
	Tier4Damping float64
	// DemographicFloor is the minimum demographic similarity for a
	// tier-3 match to be considered relevant at all.
	DemographicFloor float64
	// DefaultHorizonDays applies when the request omits a horizon.
	DefaultHorizonDays int
}

// DefaultParams returns the documented fallback policy.
func DefaultParams() Params {
	return Params{
		DefaultCVR:         0.01,
		MinTier1Clicks:     100,
		Tier3Baseline:      0.005,
		Tier4Damping:       0.5,
		DemographicFloor:   0.3,
		DefaultHorizonDays: 30,
	}
}

// normalized fills zero fields with defaults so a partially-populated
// config section still yields a workable policy.
func (p Params) normalized() Params {
	d := DefaultParams()
	if p.DefaultCVR <= 0 {
		p.DefaultCVR = d.DefaultCVR
	}
	if p.MinTier1Clicks <= 0 {
		p.MinTier1Clicks = d.MinTier1Clicks
	}
	if p.Tier3Baseline <= 0 {
		p.Tier3Baseline = d.Tier3Baseline
	}
	if p.Tier4Damping <= 0 {
		p.Tier4Damping = d.Tier4Damping
	}
	if p.DemographicFloor <= 0 {
		p.DemographicFloor = d.DemographicFloor
	}
	if p.DefaultHorizonDays <= 0 {
		p.DefaultHorizonDays = d.DefaultHorizonDays
	}
	return p
}
