package planner

import "github.com/exotic-travel-booking/backend/internal/models"

// materialize turns each filled slot that has a selection into a Stop. A
// slot with no selection (NoSelection) is silently dropped: it never
// becomes a fatal error, it just shrinks the plan.
func materialize(filled []models.FilledSlot) []models.Stop {
	stops := make([]models.Stop, 0, len(filled))
	for _, f := range filled {
		if len(f.SelectedPlaceIDs) == 0 {
			continue
		}
		option, ok := findOption(f.Options, f.SelectedPlaceIDs[0])
		if !ok {
			continue
		}

		place := option.Place
		stops = append(stops, models.Stop{
			SlotID:         f.SlotID,
			SlotTitle:      f.Title,
			SlotRole:       f.Role,
			WhyNow:         f.WhyNow,
			PlaceID:        place.PlaceID,
			Name:           place.Name,
			Lat:            place.Lat,
			Lng:            place.Lng,
			Category:       place.Category,
			Start:          f.Start,
			DurationMin:    f.DurationMin,
			OpenStatus:     option.Open,
			OpenConfidence: option.OpenConfidence,
			OpenReason:     option.OpenReason,
			OpeningHours:   place.OpeningHours,
			PlaceTypes:     place.Types,
			BusinessStatus: place.BusinessStatus,
			Rating:         place.Rating,
			Popularity:     place.UserRatingsTotal,
			PhotoReference: place.PhotoReference,
			HoursUnknown:   option.OpenReason == "hours_missing" || option.OpenReason == "hours_unusable",
			ClosedWarning:  option.OpenReason == "open_but_closing_during_slot",
		})
	}

	// assignOrderIndex is applied by the caller after nearest-neighbor
	// reordering, since that is the final stop sequence.
	return stops
}

func findOption(options []models.RankedOption, placeID string) (models.RankedOption, bool) {
	for _, o := range options {
		if o.Place.PlaceID == placeID {
			return o, true
		}
	}
	return models.RankedOption{}, false
}

// assignOrderIndex stamps a dense 0..N-1 order_index over stops in their
// current slice order.
func assignOrderIndex(stops []models.Stop) []models.Stop {
	for i := range stops {
		stops[i].OrderIndex = i
	}
	return stops
}
