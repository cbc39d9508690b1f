package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kitmedia/creator-planner/internal/analytics"
	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/service/plan"
)

// PlanGenerator runs one planning pass against live data.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req domain.PlanRequest) (*domain.Plan, error)
}

// PlanStore manages saved-plan lifecycle.
type PlanStore interface {
	Save(ctx context.Context, userEmail string, req domain.PlanRequest, generated domain.Plan) (*domain.SavedPlan, error)
	Get(ctx context.Context, id string) (*domain.SavedPlan, error)
	List(ctx context.Context, userEmail string, f plan.ListFilter) ([]domain.SavedPlan, int, error)
	Confirm(ctx context.Context, id string) (*domain.SavedPlan, error)
}

// AnalyticsService serves the reporting reads.
type AnalyticsService interface {
	Leaderboard(ctx context.Context, f analytics.LeaderboardFilter) ([]analytics.LeaderboardEntry, error)
	Forecast(ctx context.Context, budget, cpc float64, lookbackDays int, category string) (*analytics.Forecast, error)
	FilterOptions(ctx context.Context) (*analytics.FilterOptions, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	planning  PlanGenerator
	plans     PlanStore
	analytics AnalyticsService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(planning PlanGenerator, plans PlanStore, analyticsSvc AnalyticsService) *Handlers {
	return &Handlers{
		planning:  planning,
		plans:     plans,
		analytics: analyticsSvc,
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Health check

// HealthCheck returns the health status of the API
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
