// Package selector fills a ranked slot with a concrete chosen place, either
// deterministically or through an optional LLM strategy with a mandatory
// deterministic fallback.
package selector

import (
	"strings"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// whyNowMaxLen bounds the rationale string surfaced on a stop.
const whyNowMaxLen = 50

// Deterministic picks the highest-scored option for every slot — options
// arrive pre-sorted descending by score, so this is always options[0].
type Deterministic struct{}

// Fill selects a place for each ranked slot using only its top option.
func (Deterministic) Fill(slots []models.RankedSlot, weather *models.WeatherSnapshot, daypart string) []models.FilledSlot {
	out := make([]models.FilledSlot, len(slots))
	for i, slot := range slots {
		out[i] = fillFromTopOption(slot, weather, daypart)
	}
	return out
}

func fillFromTopOption(slot models.RankedSlot, weather *models.WeatherSnapshot, daypart string) models.FilledSlot {
	filled := models.FilledSlot{RankedSlot: slot}
	if len(slot.Options) == 0 {
		return filled
	}
	top := slot.Options[0]
	filled.SelectedPlaceIDs = []string{top.Place.PlaceID}
	filled.WhyNow = truncate(simpleWhyNow(weather, daypart), whyNowMaxLen)
	return filled
}

// simpleWhyNow is the canned rationale used whenever no LLM copy is
// available, in any language-model failure path.
func simpleWhyNow(weather *models.WeatherSnapshot, daypart string) string {
	if weather != nil {
		if weather.FeelsLike <= 5 {
			return "Mejor indoor por frío"
		}
		cond := strings.ToLower(weather.Condition)
		if strings.Contains(cond, "rain") || strings.Contains(cond, "drizzle") {
			return "Ideal para cubrirte"
		}
	}
	if daypart == "late" {
		return "Abierto a esta hora"
	}
	return "Buen timing"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
