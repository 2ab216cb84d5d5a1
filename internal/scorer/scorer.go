// Package scorer ranks a candidate place against a slot's requirements.
package scorer

import (
	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/temporal"
)

// hardReject is the score floor applied to any place known to be closed.
const hardReject = -10_000.0

// Input bundles everything Score needs beyond the place itself.
type Input struct {
	SlotCategories []string
	Daypart        string
	DiscoveryMode  string
	Constraints    []string
	OpenStatus     models.OpenStatus
	DistanceM      *float64
}

// Score computes a deterministic desirability score for placing Place in a
// slot. Closed places are hard-rejected; everything else is a sum of soft
// bonuses and penalties so ties are rare and ordering is stable.
func Score(place models.Place, in Input) float64 {
	if in.OpenStatus.IsOpen != nil && !*in.OpenStatus.IsOpen {
		return hardReject
	}

	score := 0.0
	category := place.Category

	var rating, reviews float64
	if place.Rating != nil {
		rating = *place.Rating
	}
	if place.UserRatingsTotal != nil {
		reviews = float64(*place.UserRatingsTotal)
	}

	if in.OpenStatus.IsOpen != nil && *in.OpenStatus.IsOpen {
		score += 15.0
		if in.OpenStatus.Confidence == "medium" {
			score -= 5.0
		}
	} else {
		score -= 3.0
	}

	if containsString(in.SlotCategories, category) {
		score += 30.0
	} else {
		score += 5.0
	}

	if category != "" && !temporal.IsCategorySuitable(category, in.Daypart) {
		score -= 25.0
	}

	score += min(rating, 5.0) * 6.0
	score += min(reviews/500.0, 6.0) * 1.2

	if in.DiscoveryMode == "local" {
		if place.TouristDensity >= 2 {
			score -= 10.0
		}
		if place.LocalFavorite {
			score += 8.0
		}
	} else {
		score += 2.0
	}

	if containsString(in.Constraints, "indoor_only") && !place.IsIndoor {
		score -= 50.0
	}

	if containsString(in.Constraints, "quiet") {
		noise := place.NoiseLevel
		if noise == 0 {
			noise = 1
		}
		if over := noise - 2; over > 0 {
			score -= float64(over) * 4.0
		}
	}

	if containsString(in.Constraints, "no_walk") && in.DistanceM != nil {
		score -= min(*in.DistanceM/200.0, 15.0)
	}

	if in.DistanceM != nil {
		score -= min(*in.DistanceM/300.0, 10.0)
	}

	return score
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
