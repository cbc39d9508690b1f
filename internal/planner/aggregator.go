package planner

import (
	"sort"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Aggregator reduces raw click and conversion rows into the performance
// snapshot the scorer consumes. It never fails on missing data: absent
// history yields defaulted fields with the Defaulted* flags set so the
// scorer can assign fallback tiers.
type Aggregator struct {
	params Params
}

// NewAggregator creates an aggregator with the given fallback policy.
func NewAggregator(params Params) *Aggregator {
	return &Aggregator{params: params.normalized()}
}

// Snapshot computes a performance snapshot for one creator.
//
// advertiserAvgCVR is the request-level fallback CVR (nil when the
// advertiser has no average). cohortMedianClicks is the median
// clicks-per-placement among creators that do have history, used as the
// click capacity estimate for creators with none; pass 0 when the whole
// cohort is cold.
func (a *Aggregator) Snapshot(
	clicks []domain.ClickRecord,
	conversions []domain.ConversionRecord,
	advertiserAvgCVR *float64,
	cohortMedianClicks float64,
) domain.PerformanceSnapshot {
	var snap domain.PerformanceSnapshot

	days := make(map[string]struct{}, len(clicks))
	placementClicks := make([]int64, 0, len(clicks))
	for _, c := range clicks {
		snap.TotalClicks += c.UniqueClicks
		placementClicks = append(placementClicks, c.UniqueClicks)
		if c.Date != "" {
			days[c.Date] = struct{}{}
		}
	}
	snap.DistinctClickDays = len(days)

	for _, c := range conversions {
		snap.TotalConversions += c.Conversions
	}

	if snap.TotalClicks > 0 {
		snap.ExpectedCVR = float64(snap.TotalConversions) / float64(snap.TotalClicks)
		snap.MedianPlacementClicks = medianInt64(placementClicks)
	}
	// A creator with clicks but zero conversions keeps its true 0 CVR;
	// only creators with no click history at all get the fallback.
	if snap.TotalClicks == 0 {
		snap.DefaultedCVR = true
		if advertiserAvgCVR != nil && *advertiserAvgCVR > 0 {
			snap.ExpectedCVR = *advertiserAvgCVR
		} else {
			snap.ExpectedCVR = a.params.DefaultCVR
		}
	}

	if snap.DistinctClickDays > 0 {
		snap.ClicksPerDay = float64(snap.TotalClicks) / float64(snap.DistinctClickDays)
	} else {
		snap.DefaultedClicks = true
		snap.ClicksPerDay = cohortMedianClicks
	}

	return snap
}

// CreatorHistory pairs a creator's identity with its raw history rows,
// the input shape repositories hand the aggregator.
type CreatorHistory struct {
	CreatorID    int64
	AcctID       string
	Name         string
	Topic        string
	Demographics domain.DemographicProfile
	Clicks       []domain.ClickRecord
	Conversions  []domain.ConversionRecord
}

// BuildPool snapshots every creator and back-fills click capacity for the
// cold ones from the warm cohort's median. Two passes: the first computes
// real snapshots, the second fills the creators whose ClicksPerDay had to
// be defaulted.
func (a *Aggregator) BuildPool(histories []CreatorHistory, advertiserAvgCVR *float64) []domain.CreatorRecord {
	pool := make([]domain.CreatorRecord, len(histories))
	for i, h := range histories {
		pool[i] = domain.CreatorRecord{
			CreatorID:    h.CreatorID,
			AcctID:       h.AcctID,
			Name:         h.Name,
			Topic:        h.Topic,
			Demographics: h.Demographics,
			Snapshot:     a.Snapshot(h.Clicks, h.Conversions, advertiserAvgCVR, 0),
		}
	}

	cohort := MedianPlacementClicks(pool)
	if cohort > 0 {
		for i := range pool {
			if pool[i].Snapshot.DefaultedClicks {
				pool[i].Snapshot.ClicksPerDay = cohort
			}
		}
	}
	return pool
}

// MedianPlacementClicks computes the cohort-level median of per-creator
// median clicks-per-placement, considering only creators with history.
// Returns 0 when no creator has history.
func MedianPlacementClicks(pool []domain.CreatorRecord) float64 {
	var medians []float64
	for _, c := range pool {
		if c.Snapshot.HasHistory() && c.Snapshot.MedianPlacementClicks > 0 {
			medians = append(medians, c.Snapshot.MedianPlacementClicks)
		}
	}
	if len(medians) == 0 {
		return 0
	}
	sort.Float64s(medians)
	return medians[len(medians)/2]
}

func medianInt64(vals []int64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]int64, len(vals))
	copy(sorted, vals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return float64(sorted[len(sorted)/2])
}
