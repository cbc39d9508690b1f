package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/planner"
)

// planRequestBody wraps the planner request with the comma-separated
// acct-id shorthand the dashboard sends for include/exclude lists.
type planRequestBody struct {
	domain.PlanRequest
	IncludeAccts string `json:"include_accts,omitempty"`
	ExcludeAccts string `json:"exclude_accts,omitempty"`
}

// HandleGeneratePlan runs one planning pass and returns the plan.
func (h *Handlers) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body planRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := body.PlanRequest
	req.IncludeAcctIDs = append(req.IncludeAcctIDs, splitAcctCSV(body.IncludeAccts)...)
	req.ExcludeAcctIDs = append(req.ExcludeAcctIDs, splitAcctCSV(body.ExcludeAccts)...)

	p, err := h.planning.GeneratePlan(r.Context(), req)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidRequest) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "plan generation failed")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// splitAcctCSV parses the dashboard's "a1, a2,a3" shorthand.
func splitAcctCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
