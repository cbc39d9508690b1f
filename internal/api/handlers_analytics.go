package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kitmedia/creator-planner/internal/analytics"
)

// HandleLeaderboard returns the creator performance leaderboard.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	f := analytics.LeaderboardFilter{
		Category:     r.URL.Query().Get("category"),
		LookbackDays: queryInt(r, "lookback_days", 0),
		Limit:        queryInt(r, "limit", 0),
	}

	entries, err := h.analytics.Leaderboard(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []analytics.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// HandleForecast projects a budget onto historical performance.
func (h *Handlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	budget, err := strconv.ParseFloat(r.URL.Query().Get("budget"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "budget is required")
		return
	}
	cpc, err := strconv.ParseFloat(r.URL.Query().Get("cpc"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "cpc is required")
		return
	}

	f, err := h.analytics.Forecast(r.Context(), budget, cpc,
		queryInt(r, "lookback_days", 0), r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidForecast) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "forecast failed")
		return
	}
	respondJSON(w, http.StatusOK, f)
}

// HandleFilterOptions returns the distinct filter values on record.
func (h *Handlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.analytics.FilterOptions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load filter options")
		return
	}
	respondJSON(w, http.StatusOK, opts)
}
