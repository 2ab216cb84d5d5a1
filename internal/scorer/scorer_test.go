package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exotic-travel-booking/backend/internal/models"
)

func ratingPtr(v float64) *float64 { return &v }
func intPtr(v int) *int            { return &v }
func distPtr(v float64) *float64   { return &v }

func TestScore_ClosedIsHardRejected(t *testing.T) {
	open := false
	place := models.Place{Category: "restaurant"}
	score := Score(place, Input{
		SlotCategories: []string{"restaurant"},
		Daypart:        "evening",
		OpenStatus:     models.OpenStatus{IsOpen: &open},
	})
	assert.Equal(t, hardReject, score)
}

func TestScore_CategoryMatchBeatsMismatch(t *testing.T) {
	place := models.Place{Category: "restaurant", IsIndoor: true}
	matched := Score(place, Input{SlotCategories: []string{"restaurant"}, Daypart: "evening"})
	mismatched := Score(place, Input{SlotCategories: []string{"museum"}, Daypart: "evening"})
	assert.Greater(t, matched, mismatched)
}

func TestScore_DaypartMismatchPenalized(t *testing.T) {
	place := models.Place{Category: "bar", IsIndoor: true}
	morning := Score(place, Input{SlotCategories: []string{"bar"}, Daypart: "morning"})
	evening := Score(place, Input{SlotCategories: []string{"bar"}, Daypart: "evening"})
	assert.Greater(t, evening, morning)
}

func TestScore_RatingAndReviewsIncreaseScore(t *testing.T) {
	place := models.Place{Category: "restaurant", IsIndoor: true, Rating: ratingPtr(4.8), UserRatingsTotal: intPtr(2000)}
	plain := models.Place{Category: "restaurant", IsIndoor: true}
	withSignal := Score(place, Input{SlotCategories: []string{"restaurant"}, Daypart: "evening"})
	without := Score(plain, Input{SlotCategories: []string{"restaurant"}, Daypart: "evening"})
	assert.Greater(t, withSignal, without)
}

func TestScore_LocalDiscoveryPenalizesTouristDensity(t *testing.T) {
	touristy := models.Place{Category: "restaurant", IsIndoor: true, TouristDensity: 3}
	local := models.Place{Category: "restaurant", IsIndoor: true, LocalFavorite: true}
	touristyScore := Score(touristy, Input{SlotCategories: []string{"restaurant"}, Daypart: "evening", DiscoveryMode: "local"})
	localScore := Score(local, Input{SlotCategories: []string{"restaurant"}, Daypart: "evening", DiscoveryMode: "local"})
	assert.Greater(t, localScore, touristyScore)
}

func TestScore_IndoorOnlyConstraintPenalizesOutdoor(t *testing.T) {
	outdoor := models.Place{Category: "park", IsIndoor: false}
	indoor := models.Place{Category: "park", IsIndoor: true}
	outdoorScore := Score(outdoor, Input{SlotCategories: []string{"park"}, Daypart: "afternoon", Constraints: []string{"indoor_only"}})
	indoorScore := Score(indoor, Input{SlotCategories: []string{"park"}, Daypart: "afternoon", Constraints: []string{"indoor_only"}})
	assert.Greater(t, indoorScore, outdoorScore)
}

func TestScore_QuietConstraintPenalizesNoise(t *testing.T) {
	loud := models.Place{Category: "bar", IsIndoor: true, NoiseLevel: 5}
	quiet := models.Place{Category: "bar", IsIndoor: true, NoiseLevel: 1}
	loudScore := Score(loud, Input{SlotCategories: []string{"bar"}, Daypart: "evening", Constraints: []string{"quiet"}})
	quietScore := Score(quiet, Input{SlotCategories: []string{"bar"}, Daypart: "evening", Constraints: []string{"quiet"}})
	assert.Greater(t, quietScore, loudScore)
}

func TestScore_DistancePenalty(t *testing.T) {
	place := models.Place{Category: "cafe", IsIndoor: true}
	near := Score(place, Input{SlotCategories: []string{"cafe"}, Daypart: "morning", DistanceM: distPtr(50)})
	far := Score(place, Input{SlotCategories: []string{"cafe"}, Daypart: "morning", DistanceM: distPtr(3000)})
	assert.Greater(t, near, far)
}

func TestScore_NoWalkConstraintAddsExtraDistancePenalty(t *testing.T) {
	place := models.Place{Category: "cafe", IsIndoor: true}
	plain := Score(place, Input{SlotCategories: []string{"cafe"}, Daypart: "morning", DistanceM: distPtr(1000)})
	noWalk := Score(place, Input{SlotCategories: []string{"cafe"}, Daypart: "morning", DistanceM: distPtr(1000), Constraints: []string{"no_walk"}})
	assert.Greater(t, plain, noWalk)
}
