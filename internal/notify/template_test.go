package notify

import (
	"strings"
	"testing"

	"github.com/osteele/liquid"

	"github.com/kitmedia/creator-planner/internal/domain"
)

func TestRenderConfirmation(t *testing.T) {
	cpa := 12.5
	p := &domain.SavedPlan{
		ID:        "plan-123",
		UserEmail: "ops@kitmedia.test",
		Plan: domain.Plan{
			PickedCreators: []domain.PlacementAllocation{
				{Name: "Creator One", Tier: domain.TierHistory, ExpectedSpend: 100, ExpectedConversions: 4},
				{Name: "Creator Two", Tier: domain.TierTopic, ExpectedSpend: 50, ExpectedConversions: 1.5},
			},
			TotalSpend:       150,
			TotalConversions: 5.5,
			BlendedCPA:       &cpa,
		},
	}

	subject, html, err := renderConfirmation(liquid.NewEngine(), p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(subject, "2 creators") || !strings.Contains(subject, "$150.00") {
		t.Errorf("subject = %q, want creator count and spend", subject)
	}
	for _, want := range []string{"plan-123", "Creator One", "Creator Two", "$12.50", "150.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderConfirmationUndefinedCPA(t *testing.T) {
	p := &domain.SavedPlan{
		ID:   "plan-456",
		Plan: domain.Plan{TotalSpend: 80},
	}

	_, html, err := renderConfirmation(liquid.NewEngine(), p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "N/A") {
		t.Error("body should show N/A for an undefined blended CPA")
	}
}
