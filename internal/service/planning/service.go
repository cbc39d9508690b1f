// Package planning orchestrates plan generation: it loads the candidate
// pool from the creator source, aggregates raw history into snapshots,
// and runs the planner engine.
package planning

import (
	"context"
	"fmt"
	"log"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/planner"
)

// Filter scopes the candidate pool load.
type Filter struct {
	Category     string
	LookbackDays int
}

// CreatorSource defines the data access contract for the candidate pool.
// Implementations must be safe for concurrent use.
type CreatorSource interface {
	// LoadHistories returns every in-scope creator with raw click and
	// conversion rows over the lookback window.
	LoadHistories(ctx context.Context, f Filter) ([]planner.CreatorHistory, error)

	// LoadSimilarityLinks returns precomputed similarity links for the
	// given creators.
	LoadSimilarityLinks(ctx context.Context, creatorIDs []int64) ([]domain.SimilarityLink, error)
}

// Service generates plans from live data. All public methods are safe
// for concurrent use if the underlying source is.
type Service struct {
	source       CreatorSource
	aggregator   *planner.Aggregator
	engine       *planner.Engine
	lookbackDays int
}

// NewService creates a planning service with the given tunables.
func NewService(source CreatorSource, params planner.Params, lookbackDays int) *Service {
	if lookbackDays <= 0 {
		lookbackDays = 90
	}
	return &Service{
		source:       source,
		aggregator:   planner.NewAggregator(params),
		engine:       planner.New(params),
		lookbackDays: lookbackDays,
	}
}

// GeneratePlan loads the candidate pool for the request and runs one
// planning pass. Similarity links are only loaded for smart-matching
// requests; the simple strategy never reads them.
func (s *Service) GeneratePlan(ctx context.Context, req domain.PlanRequest) (*domain.Plan, error) {
	histories, err := s.source.LoadHistories(ctx, Filter{
		Category:     req.Category,
		LookbackDays: s.lookbackDays,
	})
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	pool := s.aggregator.BuildPool(histories, req.AdvertiserAvgCVR)

	var links []domain.SimilarityLink
	if req.UseSmartMatching && len(pool) > 0 {
		ids := make([]int64, len(pool))
		for i, c := range pool {
			ids[i] = c.CreatorID
		}
		links, err = s.source.LoadSimilarityLinks(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load similarity links: %w", err)
		}
	}

	p, err := s.engine.GeneratePlan(req, pool, links)
	if err != nil {
		return nil, err
	}

	log.Printf("[planning.Service] plan generated: %d creators, spend %.2f of %.2f",
		len(p.PickedCreators), p.TotalSpend, req.Budget)
	return p, nil
}
