package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasAllRequiredTemplates(t *testing.T) {
	required := []string{
		"chill_evening", "shop_local", "museum_day", "culture_alt_late",
		"food_tour", "coffee_hop", "nightlife", "outdoor_active",
		"romantic_date", "highlights_tour",
	}
	for _, key := range required {
		slots, ok := Catalog[key]
		assert.True(t, ok, "missing template %s", key)
		assert.NotEmpty(t, slots, "template %s has no slots", key)
	}
}

func TestChooseTemplate_DefaultsToChillEvening(t *testing.T) {
	key, _ := ChooseTemplate("unknown_intent", "now", 20, 3, "medium")
	assert.Equal(t, "chill_evening", key)
}

func TestChooseTemplate_MuseumLateFallsBackToAltLate(t *testing.T) {
	key, _ := ChooseTemplate("museum", "now", 20, 3, "medium")
	assert.Equal(t, "culture_alt_late", key)
}

func TestChooseTemplate_MuseumDaytimeStaysMuseumDay(t *testing.T) {
	key, _ := ChooseTemplate("museum", "now", 14, 3, "medium")
	assert.Equal(t, "museum_day", key)
}

func TestChooseTemplate_TonightPartyGoesNightlife(t *testing.T) {
	key, _ := ChooseTemplate("party", "tonight", 20, 3, "medium")
	assert.Equal(t, "nightlife", key)
}

func TestChooseTemplate_LateOutdoorFallsBackToChillEvening(t *testing.T) {
	key, _ := ChooseTemplate("hike", "now", 23, 2, "medium")
	assert.Equal(t, "chill_evening", key)
}

func TestAdjust_IsIdempotent(t *testing.T) {
	base := Catalog["food_tour"]
	first := Adjust(base, 2.5, "low")
	second := Adjust(base, 2.5, "low")
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].SlotID, second[i].SlotID)
		assert.Equal(t, first[i].DurationMin, second[i].DurationMin)
	}
}

func TestAdjust_ShrinksByRolePriority(t *testing.T) {
	base := Catalog["food_tour"]
	adjusted := Adjust(base, 1.5, "medium")
	assert.Less(t, len(adjusted), len(base))
	for _, s := range adjusted {
		assert.NotEqual(t, RoleOptional, s.Role)
	}
}

func TestAdjust_ScalesDurationByEnergy(t *testing.T) {
	base := Catalog["chill_evening"]
	high := Adjust(base, 10, "high")
	low := Adjust(base, 10, "low")
	assert.Greater(t, high[0].DurationMin, low[0].DurationMin)
}

func TestAdjust_HighlightsTourInsertsLandmarkWhenRoomy(t *testing.T) {
	base := Catalog["highlights_tour"]
	adjusted := Adjust(base, 12, "low")
	assert.Greater(t, len(adjusted), len(base))
	found := false
	for _, s := range adjusted {
		if s.SlotID == "landmark_two" {
			found = true
		}
	}
	assert.True(t, found)
}
