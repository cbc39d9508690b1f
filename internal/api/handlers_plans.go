package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/service/plan"
)

type savePlanBody struct {
	UserEmail string             `json:"user_email"`
	Request   domain.PlanRequest `json:"plan_request"`
	Plan      domain.Plan        `json:"plan_data"`
}

// HandleSavePlan persists a generated plan as a draft.
func (h *Handlers) HandleSavePlan(w http.ResponseWriter, r *http.Request) {
	var body savePlanBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserEmail == "" {
		respondError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	saved, err := h.plans.Save(r.Context(), body.UserEmail, body.Request, body.Plan)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save plan")
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

// HandleListPlans returns a user's saved plans.
func (h *Handlers) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	f := plan.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	plans, total, err := h.plans.List(r.Context(), userEmail, f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list plans")
		return
	}
	if plans == nil {
		plans = []domain.SavedPlan{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"plans": plans,
		"total": total,
	})
}

// HandleGetPlan returns a single saved plan.
func (h *Handlers) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.plans.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			respondError(w, http.StatusNotFound, "plan not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleConfirmPlan transitions a draft plan to confirmed.
func (h *Handlers) HandleConfirmPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.plans.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrNotFound):
			respondError(w, http.StatusNotFound, "plan not found")
		case errors.Is(err, plan.ErrAlreadyConfirmed):
			respondError(w, http.StatusConflict, "plan is already confirmed")
		default:
			respondError(w, http.StatusInternalServerError, "failed to confirm plan")
		}
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
