package domain

// DemographicProfile describes a creator's audience, or an advertiser's
// target audience. All fields are free-form strings as entered by ops;
// matching logic normalizes them.
type DemographicProfile struct {
	AgeRange   string `json:"age_range,omitempty"`   // e.g. "25-34"
	GenderSkew string `json:"gender_skew,omitempty"` // e.g. "mostly women", "even"
	Location   string `json:"location,omitempty"`    // e.g. "US"
	Interests  string `json:"interests,omitempty"`   // comma-separated free text
}

// IsZero reports whether no demographic dimension is set.
func (d DemographicProfile) IsZero() bool {
	return d.AgeRange == "" && d.GenderSkew == "" && d.Location == "" && d.Interests == ""
}

// PerformanceSnapshot is the aggregated click/conversion history for one
// creator, reduced to the rate estimates the scorer needs. Defaulted*
// flags record which fields were filled from fallback policy rather than
// real history; the smart scorer uses them for tier assignment.
type PerformanceSnapshot struct {
	TotalClicks      int64   `json:"total_clicks"`
	TotalConversions int64   `json:"total_conversions"`
	ExpectedCVR      float64 `json:"expected_cvr"`
	ClicksPerDay     float64 `json:"clicks_per_day"`
	// MedianPlacementClicks is the median unique clicks across this
	// creator's historical placements. Zero when there is no history.
	MedianPlacementClicks float64 `json:"median_placement_clicks"`
	DistinctClickDays     int     `json:"distinct_click_days"`
	DefaultedCVR          bool    `json:"defaulted_cvr"`
	DefaultedClicks       bool    `json:"defaulted_clicks"`
}

// HasHistory reports whether the snapshot is backed by real click data.
func (s PerformanceSnapshot) HasHistory() bool {
	return s.TotalClicks > 0
}

// CreatorRecord is one candidate creator as loaded for a planning run:
// identity, audience demographics, and the derived performance snapshot.
type CreatorRecord struct {
	CreatorID    int64               `json:"creator_id"`
	AcctID       string              `json:"acct_id"`
	Name         string              `json:"name"`
	Topic        string              `json:"topic,omitempty"`
	Demographics DemographicProfile  `json:"demographics"`
	Snapshot     PerformanceSnapshot `json:"snapshot"`
}

// LinkKind distinguishes how a similarity link was computed.
type LinkKind string

const (
	LinkTopic     LinkKind = "topic"
	LinkEmbedding LinkKind = "embedding"
)

// SimilarityLink relates a creator to a comparable creator with a
// precomputed similarity score in [0,1]. Links are directed: CreatorID is
// the creator being estimated, ComparableID the creator with history.
type SimilarityLink struct {
	CreatorID    int64    `json:"creator_id"`
	ComparableID int64    `json:"comparable_creator_id"`
	Score        float64  `json:"similarity_score"`
	Kind         LinkKind `json:"kind"`
}

// ClickRecord is one day of click history for a creator, as uploaded from
// a performance report.
type ClickRecord struct {
	Date         string `json:"date"` // YYYY-MM-DD
	UniqueClicks int64  `json:"unique_clicks"`
}

// ConversionRecord is a date-range conversion count for a creator. The
// caller pre-filters records to the planning lookback window.
type ConversionRecord struct {
	RangeStart  string `json:"range_start"`
	RangeEnd    string `json:"range_end"`
	Conversions int64  `json:"conversions"`
}
