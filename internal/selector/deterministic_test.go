package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exotic-travel-booking/backend/internal/models"
)

func TestDeterministic_PicksTopOption(t *testing.T) {
	slot := models.RankedSlot{
		Slot: models.Slot{SlotID: "drinks"},
		Options: []models.RankedOption{
			{Place: models.Place{PlaceID: "p1"}, Score: 50},
			{Place: models.Place{PlaceID: "p2"}, Score: 10},
		},
	}

	filled := Deterministic{}.Fill([]models.RankedSlot{slot}, nil, "evening")

	assert.Equal(t, []string{"p1"}, filled[0].SelectedPlaceIDs)
	assert.NotEmpty(t, filled[0].WhyNow)
}

func TestDeterministic_NoOptionsLeavesSlotUnfilled(t *testing.T) {
	slot := models.RankedSlot{Slot: models.Slot{SlotID: "drinks"}}
	filled := Deterministic{}.Fill([]models.RankedSlot{slot}, nil, "evening")
	assert.Empty(t, filled[0].SelectedPlaceIDs)
}

func TestDeterministic_ColdWeatherRationale(t *testing.T) {
	weather := &models.WeatherSnapshot{FeelsLike: 1}
	got := simpleWhyNow(weather, "afternoon")
	assert.Equal(t, "Mejor indoor por frío", got)
}

func TestDeterministic_LateNightRationale(t *testing.T) {
	got := simpleWhyNow(nil, "late")
	assert.Equal(t, "Abierto a esta hora", got)
}
