package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotic-travel-booking/backend/internal/models"
)

func TestNearestNeighbor_OrdersByProximityFromFirstStop(t *testing.T) {
	stops := []models.Stop{
		{PlaceID: "a", Lat: 0, Lng: 0},
		{PlaceID: "far", Lat: 10, Lng: 10},
		{PlaceID: "near", Lat: 0.1, Lng: 0.1},
	}

	ordered := nearestNeighbor(stops)

	require.Len(t, ordered, 3)
	assert.Equal(t, "a", ordered[0].PlaceID)
	assert.Equal(t, "near", ordered[1].PlaceID)
	assert.Equal(t, "far", ordered[2].PlaceID)
}

func TestNearestNeighbor_IsAFixedPointOnSecondPass(t *testing.T) {
	stops := []models.Stop{
		{PlaceID: "a", Lat: 0, Lng: 0},
		{PlaceID: "b", Lat: 5, Lng: 5},
		{PlaceID: "c", Lat: 1, Lng: 1},
	}

	once := nearestNeighbor(stops)
	twice := nearestNeighbor(once)

	assert.Equal(t, once, twice)
}

func TestNearestNeighbor_LeavesTwoOrFewerStopsUnchanged(t *testing.T) {
	stops := []models.Stop{{PlaceID: "a"}, {PlaceID: "b"}}

	ordered := nearestNeighbor(stops)

	assert.Equal(t, stops, ordered)
}
