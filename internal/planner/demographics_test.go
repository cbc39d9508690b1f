package planner

import (
	"math"
	"testing"

	"github.com/kitmedia/creator-planner/internal/domain"
)

func TestDemographicSimilarityFullProfile(t *testing.T) {
	creator := domain.DemographicProfile{
		AgeRange:   "25-34",
		GenderSkew: "mostly women",
		Location:   "US",
		Interests:  "fashion, beauty, travel",
	}
	target := domain.DemographicProfile{
		AgeRange:   "25-34",
		GenderSkew: "mostly women",
		Location:   "us",
		Interests:  "Fashion, Beauty, Travel",
	}

	if got := DemographicSimilarity(creator, target); got != 1.0 {
		t.Errorf("identical profiles = %v, want 1.0", got)
	}
}

func TestDemographicSimilarityRenormalizesMissingDimensions(t *testing.T) {
	// Only age present on both sides: the single dimension carries full
	// weight rather than being diluted by absent ones.
	creator := domain.DemographicProfile{AgeRange: "25-34"}
	target := domain.DemographicProfile{AgeRange: "18-34", Location: "US"}

	if got := DemographicSimilarity(creator, target); got != 1.0 {
		t.Errorf("age-only overlap = %v, want 1.0", got)
	}
}

func TestDemographicSimilarityNoComparableDimensions(t *testing.T) {
	creator := domain.DemographicProfile{AgeRange: "25-34"}
	target := domain.DemographicProfile{Location: "US"}

	if got := DemographicSimilarity(creator, target); got != 0 {
		t.Errorf("disjoint dimensions = %v, want 0", got)
	}
}

func TestMatchAgeRanges(t *testing.T) {
	tests := []struct {
		creator, target string
		want            float64
	}{
		{"25-34", "25-34", 1.0},
		{"25-34", "18-34", 1.0},   // full overlap of the smaller range
		{"18-24", "25-34", 0},     // disjoint
		{"18-29", "25-34", 0.5},   // 25-29 is 5 of the smaller 10-year range
		{"garbage", "25-34", 0},   // unparseable
		{"34-25", "25-34", 0},     // inverted range
	}
	for _, tt := range tests {
		if got := matchAgeRanges(tt.creator, tt.target); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("matchAgeRanges(%q, %q) = %v, want %v", tt.creator, tt.target, got, tt.want)
		}
	}
}

func TestMatchGenderSkew(t *testing.T) {
	tests := []struct {
		creator, target string
		want            float64
	}{
		{"mostly women", "mostly women", 1.0},
		{"Even", "even split", 0.8},
		{"mostly women", "skews women", 0.6},
		{"mostly men", "skews men", 0.6},
		{"mostly women", "mostly men", 0},
	}
	for _, tt := range tests {
		if got := matchGenderSkew(tt.creator, tt.target); got != tt.want {
			t.Errorf("matchGenderSkew(%q, %q) = %v, want %v", tt.creator, tt.target, got, tt.want)
		}
	}
}

func TestMatchInterestsJaccard(t *testing.T) {
	// {fashion, beauty} ∩ {beauty, travel} = 1, union = 3.
	got := matchInterests("fashion, beauty", "Beauty, travel")
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("jaccard = %v, want 1/3", got)
	}

	if got := matchInterests("", "beauty"); got != 0 {
		t.Errorf("empty side = %v, want 0", got)
	}
}
