package tasks

import (
	"context"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// legModes are tried for every consecutive stop pair. Each is independent:
// a failure on one mode never blocks the others, it just zeroes that mode's
// distance and duration.
var legModes = []string{"walk", "bike", "drive"}

const walkRecommendThresholdM = 1500

// buildLegs computes per-mode travel estimates between every consecutive
// pair of stops and picks a recommended_mode for each, following the
// no_walk constraint override and the short-walk preference.
func (s *Shell) buildLegs(ctx context.Context, stops []models.Stop, constraints []string, language string) []models.Leg {
	if len(stops) < 2 || s.Directions == nil {
		return nil
	}

	noWalk := containsConstraint(constraints, "no_walk")

	legs := make([]models.Leg, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		from := stops[i]
		to := stops[i+1]
		origin := models.LatLng{Lat: from.Lat, Lng: from.Lng}
		destination := models.LatLng{Lat: to.Lat, Lng: to.Lng}

		modes := make(map[string]models.LegModeResult, len(legModes))
		for _, mode := range legModes {
			result, err := s.Directions.Leg(ctx, origin, destination, mode, language)
			if err != nil {
				result = models.LegModeResult{}
			}
			modes[mode] = result
		}

		mode, reason := recommendMode(modes, noWalk)
		chosen := modes[mode]

		legs = append(legs, models.Leg{
			FromStop:               from.OrderIndex,
			ToStop:                 to.OrderIndex,
			Modes:                  modes,
			RecommendedMode:        mode,
			RecommendedDistanceM:   chosen.DistanceM,
			RecommendedDurationSec: chosen.DurationSec,
			RecommendedReason:      reason,
		})
	}

	return legs
}

// recommendMode picks drive whenever no_walk is set, otherwise walk when
// the walking distance is within the short-walk threshold, falling back
// to drive for anything longer.
func recommendMode(modes map[string]models.LegModeResult, noWalk bool) (string, string) {
	if noWalk {
		return "drive", "no_walk constraint"
	}
	if walk, ok := modes["walk"]; ok && walk.DistanceM > 0 && walk.DistanceM <= walkRecommendThresholdM {
		return "walk", "short walking distance"
	}
	return "drive", "walking distance too long"
}

func containsConstraint(constraints []string, target string) bool {
	for _, c := range constraints {
		if c == target {
			return true
		}
	}
	return false
}
