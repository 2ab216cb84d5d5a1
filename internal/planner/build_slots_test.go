package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotic-travel-booking/backend/internal/models"
)

func TestBuildSlots_LaysOutBackToBackFromFiveMinutesIn(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{
		{SlotID: "drinks", DurationMin: 60, Categories: []string{"bar"}},
		{SlotID: "dinner", DurationMin: 90, Categories: []string{"restaurant"}},
	}

	slots := buildSlots(dt, specs, models.WeatherProfile{}, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, dt.Add(5*time.Minute), slots[0].Start)
	assert.Equal(t, slots[0].Start.Add(60*time.Minute), slots[0].End)
	assert.Equal(t, slots[0].End, slots[1].Start)
}

func TestBuildSlots_SkipsOutdoorSlotsInHostileWeather(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{
		{SlotID: "walk", DurationMin: 60, Categories: []string{"park"}},
		{SlotID: "dinner", DurationMin: 90, Categories: []string{"restaurant"}},
	}

	slots := buildSlots(dt, specs, models.WeatherProfile{Rain: true}, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, "dinner", slots[0].SlotID)
}

func TestBuildSlots_ShrinksShoppingInVeryColdWeather(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{{SlotID: "shopping_cluster", DurationMin: 120, Categories: []string{"park"}}}

	slots := buildSlots(dt, specs, models.WeatherProfile{VeryCold: true}, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, 90, slots[0].DurationMin)
}

func TestBuildSlots_ExtendsWalkingSlotsInPleasantWeather(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{{SlotID: "walk", DurationMin: 60, Categories: []string{"park"}}}

	slots := buildSlots(dt, specs, models.WeatherProfile{Pleasant: true}, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, 72, slots[0].DurationMin)
}

func TestBuildSlots_MergesConstraintsPreservingFirstSeenOrder(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{{SlotID: "dinner", DurationMin: 60, Categories: []string{"restaurant"}, Constraints: []string{"quiet"}}}

	slots := buildSlots(dt, specs, models.WeatherProfile{Snow: true}, []string{"quiet", "no_walk"})

	assert.Equal(t, []string{"quiet", "indoor_only", "prefer_short_legs", "no_walk"}, slots[0].Constraints)
}

func TestBuildSlots_MovesHotelBarToFrontInVeryColdWeather(t *testing.T) {
	dt := time.Date(2026, 7, 30, 19, 0, 0, 0, time.UTC)
	specs := []models.SlotSpec{{SlotID: "drinks", DurationMin: 60, Categories: []string{"bar", "wine_bar", "hotel_bar"}}}

	slots := buildSlots(dt, specs, models.WeatherProfile{VeryCold: true}, nil)

	assert.Equal(t, []string{"hotel_bar", "bar", "wine_bar"}, slots[0].Categories)
}
