package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/providers"
)

type fakePlaces struct{ seq int }

func (f *fakePlaces) Nearby(ctx context.Context, q providers.NearbyQuery) ([]providers.RawPlace, error) {
	f.seq++
	rating := 4.2
	reviews := 300
	return []providers.RawPlace{{
		PlaceID:          fmt.Sprintf("place-%s-%d", q.Type, f.seq),
		Name:             "Test Venue " + q.Type,
		Lat:              q.Location.Lat + 0.001*float64(f.seq),
		Lng:              q.Location.Lng + 0.001*float64(f.seq),
		Rating:           &rating,
		UserRatingsTotal: &reviews,
		Types:            []string{q.Type},
		BusinessStatus:   "OPERATIONAL",
	}}, nil
}

func (f *fakePlaces) Details(ctx context.Context, q providers.DetailsQuery) (providers.RawPlace, error) {
	return providers.RawPlace{}, fmt.Errorf("details not supported in fake")
}

type fakeWeather struct{ snapshot models.WeatherSnapshot }

func (f fakeWeather) Snapshot(ctx context.Context, loc models.LatLng) (models.WeatherSnapshot, error) {
	return f.snapshot, nil
}

func testEngine() *Engine {
	places := &fakePlaces{}
	return &Engine{
		Candidates: providers.NewCandidateSource(places, nil, nil),
		Weather: fakeWeather{snapshot: models.WeatherSnapshot{
			Temp: 20, FeelsLike: 18, Condition: "clear", Confidence: "high",
		}},
	}
}

func baseInputs() models.GenerateInputs {
	return models.GenerateInputs{
		CityName:      "Madrid",
		UserLocation:  models.LatLng{Lat: 40.4168, Lng: -3.7038},
		Intent:        "chill",
		WhenSelection: "now",
		DiscoveryMode: "tourist",
		Energy:        2,
		DurationHours: 3,
	}
}

func TestGenerate_RejectsMissingCity(t *testing.T) {
	e := testEngine()
	inputs := baseInputs()
	inputs.CityName = ""

	_, err := e.Generate(context.Background(), inputs, models.GenerateContext{DtLocal: time.Now()})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerate_RejectsMissingLocation(t *testing.T) {
	e := testEngine()
	inputs := baseInputs()
	inputs.UserLocation = models.LatLng{}

	_, err := e.Generate(context.Background(), inputs, models.GenerateContext{DtLocal: time.Now()})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerate_ProducesDenseOrderIndex(t *testing.T) {
	e := testEngine()
	dt := time.Date(2026, 7, 30, 20, 0, 0, 0, time.UTC)

	result, err := e.Generate(context.Background(), baseInputs(), models.GenerateContext{DtLocal: dt})

	require.NoError(t, err)
	require.NotEmpty(t, result.ChosenStops)
	for i, stop := range result.ChosenStops {
		assert.Equal(t, i, stop.OrderIndex)
	}
	assert.Equal(t, "chill_evening", result.Debug.Template)
}

func TestGenerate_NeverSurfacesAHardClosedStop(t *testing.T) {
	e := testEngine()
	dt := time.Date(2026, 7, 30, 20, 0, 0, 0, time.UTC)

	result, err := e.Generate(context.Background(), baseInputs(), models.GenerateContext{DtLocal: dt})

	require.NoError(t, err)
	for _, stop := range result.ChosenStops {
		assert.False(t, stop.OpenStatus != nil && !*stop.OpenStatus)
	}
}

func TestGenerate_UsesSeasonalFallbackWhenWeatherProviderMissing(t *testing.T) {
	e := testEngine()
	e.Weather = nil
	dt := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)

	result, err := e.Generate(context.Background(), baseInputs(), models.GenerateContext{DtLocal: dt})

	require.NoError(t, err)
	assert.Equal(t, "low", result.Debug.WeatherConfidence)
}
