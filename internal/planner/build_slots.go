package planner

import (
	"time"

	"github.com/exotic-travel-booking/backend/internal/models"
)

const slotGapMin = 5

var hostileSkipSlots = map[string]bool{
	"photo_stop": true, "walk": true, "viewpoint_walk": true, "scenic_walk": true,
}

var veryColdShrinkSlots = map[string]bool{
	"shopping_cluster": true, "explore_area": true,
}

var pleasantExtendSlots = map[string]bool{
	"photo_stop": true, "walk": true,
}

// buildSlots instantiates a template's SlotSpecs against a concrete start
// time, applying weather-driven duration and constraint adjustments before
// laying them out back to back from dtLocal+5min.
func buildSlots(dtLocal time.Time, specs []models.SlotSpec, profile models.WeatherProfile, userConstraints []string) []models.Slot {
	hostile := profile.VeryCold || profile.Rain || profile.Snow

	cursor := dtLocal.Add(slotGapMin * time.Minute)
	slots := make([]models.Slot, 0, len(specs))

	for _, s := range specs {
		if hostile && hostileSkipSlots[s.SlotID] {
			continue
		}

		duration := s.DurationMin
		if profile.VeryCold && veryColdShrinkSlots[s.SlotID] {
			duration = maxInt(60, int(0.75*float64(duration)))
		}
		if profile.Pleasant && pleasantExtendSlots[s.SlotID] {
			duration = int(1.2 * float64(duration))
		}

		categories := reorderCategories(s, profile)
		constraints := mergeConstraints(s.Constraints, climateConstraints(hostile), userConstraints)

		end := cursor.Add(time.Duration(duration) * time.Minute)
		slots = append(slots, models.Slot{
			SlotID:      s.SlotID,
			Title:       s.Title,
			Start:       cursor,
			End:         end,
			DurationMin: duration,
			Categories:  categories,
			Constraints: constraints,
			Role:        s.Role,
		})
		cursor = end
	}

	return slots
}

// climateConstraints returns the constraints the weather profile itself
// imposes on every slot when conditions are hostile.
func climateConstraints(hostile bool) []string {
	if !hostile {
		return nil
	}
	return []string{"indoor_only", "prefer_short_legs"}
}

// mergeConstraints unions constraint lists in spec/climate/user order,
// deduplicating while preserving first-seen order.
func mergeConstraints(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, c := range list {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// reorderCategories moves hotel_bar to the front of a drinks slot's
// category list in very-cold weather, since it is the only warm option.
func reorderCategories(s models.SlotSpec, profile models.WeatherProfile) []string {
	if !profile.VeryCold || s.SlotID != "drinks" {
		return s.Categories
	}
	idx := -1
	for i, c := range s.Categories {
		if c == "hotel_bar" {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return s.Categories
	}
	out := make([]string, 0, len(s.Categories))
	out = append(out, "hotel_bar")
	out = append(out, s.Categories[:idx]...)
	out = append(out, s.Categories[idx+1:]...)
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
