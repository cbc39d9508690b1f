package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kitmedia/creator-planner/internal/analytics"
	"github.com/kitmedia/creator-planner/internal/domain"
	"github.com/kitmedia/creator-planner/internal/planner"
	"github.com/kitmedia/creator-planner/internal/service/plan"
)

type fakePlanning struct {
	lastReq domain.PlanRequest
}

func (f *fakePlanning) GeneratePlan(_ context.Context, req domain.PlanRequest) (*domain.Plan, error) {
	f.lastReq = req
	if req.Budget < 0 || req.CPC == nil {
		return nil, planner.ErrInvalidRequest
	}
	return &domain.Plan{
		PickedCreators: []domain.PlacementAllocation{{CreatorID: 1, AcctID: "a1", ExpectedSpend: 90}},
		TotalSpend:     90,
	}, nil
}

type fakePlans struct {
	saved map[string]*domain.SavedPlan
}

func (f *fakePlans) Save(_ context.Context, userEmail string, req domain.PlanRequest, generated domain.Plan) (*domain.SavedPlan, error) {
	p := &domain.SavedPlan{ID: "plan-1", UserEmail: userEmail, Request: req, Plan: generated, Status: domain.PlanDraft}
	f.saved[p.ID] = p
	return p, nil
}

func (f *fakePlans) Get(_ context.Context, id string) (*domain.SavedPlan, error) {
	p, ok := f.saved[id]
	if !ok {
		return nil, plan.ErrNotFound
	}
	return p, nil
}

func (f *fakePlans) List(_ context.Context, userEmail string, _ plan.ListFilter) ([]domain.SavedPlan, int, error) {
	var out []domain.SavedPlan
	for _, p := range f.saved {
		if p.UserEmail == userEmail {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakePlans) Confirm(_ context.Context, id string) (*domain.SavedPlan, error) {
	p, ok := f.saved[id]
	if !ok {
		return nil, plan.ErrNotFound
	}
	if p.Status == domain.PlanConfirmed {
		return nil, plan.ErrAlreadyConfirmed
	}
	p.Status = domain.PlanConfirmed
	return p, nil
}

type fakeAnalytics struct{}

func (fakeAnalytics) Leaderboard(_ context.Context, _ analytics.LeaderboardFilter) ([]analytics.LeaderboardEntry, error) {
	return []analytics.LeaderboardEntry{{CreatorID: 1, AcctID: "a1", Conversions: 10}}, nil
}

func (fakeAnalytics) Forecast(_ context.Context, budget, cpc float64, _ int, _ string) (*analytics.Forecast, error) {
	if budget <= 0 || cpc <= 0 {
		return nil, analytics.ErrInvalidForecast
	}
	return &analytics.Forecast{Budget: budget, CPC: cpc, ExpectedClicks: budget / cpc}, nil
}

func (fakeAnalytics) FilterOptions(_ context.Context) (*analytics.FilterOptions, error) {
	return &analytics.FilterOptions{Categories: []string{"beauty"}}, nil
}

func testServer(t *testing.T) (*httptest.Server, *fakePlanning, *fakePlans) {
	t.Helper()
	planning := &fakePlanning{}
	plans := &fakePlans{saved: make(map[string]*domain.SavedPlan)}
	h := NewHandlers(planning, plans, fakeAnalytics{})
	srv := httptest.NewServer(SetupRoutes(h))
	t.Cleanup(srv.Close)
	return srv, planning, plans
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGeneratePlanEndpoint(t *testing.T) {
	srv, planning, _ := testServer(t)

	body := `{"budget": 100, "cpc": 0.5, "include_accts": "a1, a2", "exclude_accts": ""}`
	resp, err := http.Post(srv.URL+"/api/plan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var p domain.Plan
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.TotalSpend != 90 {
		t.Errorf("total spend = %v, want 90", p.TotalSpend)
	}
	if len(planning.lastReq.IncludeAcctIDs) != 2 {
		t.Errorf("include accts = %v, want [a1 a2] from CSV shorthand", planning.lastReq.IncludeAcctIDs)
	}
}

func TestGeneratePlanInvalid(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Post(srv.URL+"/api/plan", "application/json", strings.NewReader(`{"budget": -1}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSaveAndGetPlan(t *testing.T) {
	srv, _, _ := testServer(t)

	body := `{"user_email": "ops@kitmedia.test", "plan_request": {"budget": 100}, "plan_data": {"total_spend": 90}}`
	resp, err := http.Post(srv.URL+"/api/plans/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d, want 201", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/api/plans/plan-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/plans/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestConfirmPlanConflict(t *testing.T) {
	srv, _, plans := testServer(t)
	plans.saved["plan-1"] = &domain.SavedPlan{ID: "plan-1", Status: domain.PlanConfirmed}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/plans/plan-1/confirm", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/leaderboard?category=beauty")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Entries []analytics.LeaderboardEntry `json:"entries"`
		Total   int                          `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || len(out.Entries) != 1 {
		t.Fatalf("leaderboard = %+v, want one entry", out)
	}
}

func TestForecastEndpointValidation(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/forecast?cpc=0.5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing budget", resp.StatusCode)
	}
}
