// Package analytics serves the reporting reads around the planner: the
// creator leaderboard, budget forecasts, and filter options.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrInvalidForecast is returned for forecast requests with a
// non-positive budget or cpc.
var ErrInvalidForecast = errors.New("invalid forecast request")

const defaultLookbackDays = 90

// Repository defines the data access contract for analytics reads.
type Repository interface {
	// Leaderboard returns per-creator aggregates ordered by conversions
	// descending.
	Leaderboard(ctx context.Context, f LeaderboardFilter) ([]LeaderboardEntry, error)

	// HistoricalTotals returns total clicks and conversions over the
	// lookback window, optionally scoped to a category.
	HistoricalTotals(ctx context.Context, lookbackDays int, category string) (clicks, conversions int64, err error)

	// FilterOptions returns the distinct categories and topics on record.
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}

// Cache is a read-through cache for leaderboard responses. Implementations
// must treat misses and transport errors identically (return ok=false);
// the service always falls back to the repository.
type Cache interface {
	Get(ctx context.Context, key string, v interface{}) bool
	Set(ctx context.Context, key string, v interface{})
}

// Service implements analytics reads. Leaderboard queries go through the
// cache when one is configured.
type Service struct {
	repo  Repository
	cache Cache // optional
}

// NewService creates an analytics service. cache may be nil.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Leaderboard returns the creator leaderboard, cached per filter.
func (s *Service) Leaderboard(ctx context.Context, f LeaderboardFilter) ([]LeaderboardEntry, error) {
	if f.LookbackDays <= 0 {
		f.LookbackDays = defaultLookbackDays
	}
	key := fmt.Sprintf("leaderboard:%s:%d:%d", f.Category, f.LookbackDays, f.Limit)

	if s.cache != nil {
		var cached []LeaderboardEntry
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	entries, err := s.repo.Leaderboard(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, entries)
	}
	return entries, nil
}

// Forecast projects a budget onto the historical conversion rate over the
// lookback window. A cold window (no clicks) yields a zero-CVR forecast
// with an undefined CPA, not an error.
func (s *Service) Forecast(ctx context.Context, budget, cpc float64, lookbackDays int, category string) (*Forecast, error) {
	if budget <= 0 || cpc <= 0 {
		return nil, fmt.Errorf("%w: budget and cpc must be positive", ErrInvalidForecast)
	}
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	clicks, conversions, err := s.repo.HistoricalTotals(ctx, lookbackDays, category)
	if err != nil {
		return nil, fmt.Errorf("historical totals: %w", err)
	}

	f := &Forecast{
		Budget:         budget,
		CPC:            cpc,
		LookbackDays:   lookbackDays,
		ExpectedClicks: budget / cpc,
	}
	if clicks > 0 {
		f.HistoricalCVR = float64(conversions) / float64(clicks)
	} else {
		log.Printf("[analytics.Service] forecast with no history in %d-day window (category %q)", lookbackDays, category)
	}
	f.ExpectedConversions = f.ExpectedClicks * f.HistoricalCVR
	if f.ExpectedConversions > 0 {
		cpa := budget / f.ExpectedConversions
		f.ExpectedCPA = &cpa
	}
	return f, nil
}

// FilterOptions returns the distinct filter values on record.
func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	return s.repo.FilterOptions(ctx)
}
