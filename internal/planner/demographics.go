package planner

import (
	"strconv"
	"strings"

	"github.com/kitmedia/creator-planner/internal/domain"
)

// Demographic dimension weights. Renormalized over the dimensions both
// sides actually have, so a missing field reduces confidence without
// zeroing the score.
const (
	weightAge      = 0.3
	weightGender   = 0.2
	weightLocation = 0.2
	weightInterest = 0.3
)

// DemographicSimilarity scores how well a creator's audience matches a
// target profile, in [0,1]. Each dimension earns partial credit; the
// result is the weighted average over dimensions present on both sides.
// Returns 0 when no dimension is comparable.
func DemographicSimilarity(creator, target domain.DemographicProfile) float64 {
	var sum, weight float64

	if creator.AgeRange != "" && target.AgeRange != "" {
		sum += matchAgeRanges(creator.AgeRange, target.AgeRange) * weightAge
		weight += weightAge
	}
	if creator.GenderSkew != "" && target.GenderSkew != "" {
		sum += matchGenderSkew(creator.GenderSkew, target.GenderSkew) * weightGender
		weight += weightGender
	}
	if creator.Location != "" && target.Location != "" {
		sum += matchLocation(creator.Location, target.Location) * weightLocation
		weight += weightLocation
	}
	if creator.Interests != "" && target.Interests != "" {
		sum += matchInterests(creator.Interests, target.Interests) * weightInterest
		weight += weightInterest
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}

// matchAgeRanges returns the overlap between two "lo-hi" age ranges as a
// fraction of the smaller range. Unparseable ranges score 0.
func matchAgeRanges(creatorAge, targetAge string) float64 {
	cLo, cHi, ok := parseAgeRange(creatorAge)
	if !ok {
		return 0
	}
	tLo, tHi, ok := parseAgeRange(targetAge)
	if !ok {
		return 0
	}

	lo := max(cLo, tLo)
	hi := min(cHi, tHi)
	if lo > hi {
		return 0
	}

	overlap := hi - lo + 1
	smaller := min(cHi-cLo+1, tHi-tLo+1)
	return float64(overlap) / float64(smaller)
}

func parseAgeRange(s string) (lo, hi int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// matchGenderSkew gives 1.0 for an exact match and partial credit for
// compatible skews ("even" vs "even" variants, same-direction skews).
func matchGenderSkew(creatorGender, targetGender string) float64 {
	c := strings.ToLower(strings.TrimSpace(creatorGender))
	t := strings.ToLower(strings.TrimSpace(targetGender))

	switch {
	case c == t:
		return 1.0
	case strings.Contains(c, "even") && strings.Contains(t, "even"):
		return 0.8
	case strings.Contains(c, "women") && strings.Contains(t, "women"):
		return 0.6
	case strings.Contains(c, "men") && strings.Contains(t, "men") &&
		!strings.Contains(c, "women") && !strings.Contains(t, "women"):
		return 0.6
	default:
		return 0
	}
}

func matchLocation(creatorLoc, targetLoc string) float64 {
	if strings.EqualFold(strings.TrimSpace(creatorLoc), strings.TrimSpace(targetLoc)) {
		return 1.0
	}
	return 0
}

// matchInterests is the Jaccard overlap of the comma-separated interest
// lists, case-insensitive.
func matchInterests(creatorInterests, targetInterests string) float64 {
	cSet := parseInterests(creatorInterests)
	tSet := parseInterests(targetInterests)
	if len(cSet) == 0 || len(tSet) == 0 {
		return 0
	}

	intersection := 0
	for i := range cSet {
		if _, ok := tSet[i]; ok {
			intersection++
		}
	}
	union := len(cSet) + len(tSet) - intersection
	return float64(intersection) / float64(union)
}

func parseInterests(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		v := strings.ToLower(strings.TrimSpace(part))
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}
