package planner

import "github.com/exotic-travel-booking/backend/internal/models"

// nearestNeighbor reorders stops starting from stops[0], repeatedly picking
// the unvisited stop closest (by planar squared-distance) to the last
// placed one. The geographic scale here is always 1-3 km across at most a
// handful of stops, so this greedy walk is a fixed point on a second pass
// and a full TSP would be overkill.
func nearestNeighbor(stops []models.Stop) []models.Stop {
	if len(stops) <= 2 {
		return stops
	}

	remaining := make([]models.Stop, len(stops))
	copy(remaining, stops)

	ordered := make([]models.Stop, 0, len(stops))
	ordered = append(ordered, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		bestIdx := 0
		bestDist := squaredDistance(last, remaining[0])
		for i := 1; i < len(remaining); i++ {
			d := squaredDistance(last, remaining[i])
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		ordered = append(ordered, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}

func squaredDistance(a, b models.Stop) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return dLat*dLat + dLng*dLng
}
