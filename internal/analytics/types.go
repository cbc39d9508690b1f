package analytics

// LeaderboardEntry is one creator's aggregate performance row, ordered
// by conversions. CPA is nil when the creator has no conversions.
type LeaderboardEntry struct {
	CreatorID   int64    `json:"creator_id"`
	AcctID      string   `json:"acct_id"`
	Name        string   `json:"name"`
	Clicks      int64    `json:"clicks"`
	Conversions int64    `json:"conversions"`
	Spend       float64  `json:"spend"`
	CVR         float64  `json:"cvr"`
	CPA         *float64 `json:"cpa"`
}

// LeaderboardFilter scopes a leaderboard query.
type LeaderboardFilter struct {
	Category     string
	LookbackDays int
	Limit        int
}

// Forecast is a budget projection from historical conversion rates.
type Forecast struct {
	Budget              float64  `json:"budget"`
	CPC                 float64  `json:"cpc"`
	LookbackDays        int      `json:"lookback_days"`
	HistoricalCVR       float64  `json:"historical_cvr"`
	ExpectedClicks      float64  `json:"expected_clicks"`
	ExpectedConversions float64  `json:"expected_conversions"`
	ExpectedCPA         *float64 `json:"expected_cpa"`
}

// FilterOptions lists the distinct values the UI can filter by.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Topics     []string `json:"topics"`
}
