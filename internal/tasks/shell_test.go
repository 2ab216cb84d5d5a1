package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/planner"
	"github.com/exotic-travel-booking/backend/internal/providers"
)

type fakePlaces struct{ places []providers.RawPlace }

func (f fakePlaces) Nearby(ctx context.Context, q providers.NearbyQuery) ([]providers.RawPlace, error) {
	return f.places, nil
}

func (f fakePlaces) Details(ctx context.Context, q providers.DetailsQuery) (providers.RawPlace, error) {
	for _, p := range f.places {
		if p.PlaceID == q.PlaceID {
			return p, nil
		}
	}
	return providers.RawPlace{}, nil
}

type fakeWeather struct {
	snapshot models.WeatherSnapshot
}

func (f fakeWeather) Snapshot(ctx context.Context, loc models.LatLng) (models.WeatherSnapshot, error) {
	return f.snapshot, nil
}

type fakeDirections struct{}

func (fakeDirections) Leg(ctx context.Context, origin, destination models.LatLng, mode, language string) (models.LegModeResult, error) {
	dist := map[string]int{"walk": 400, "bike": 800, "drive": 1200}[mode]
	return models.LegModeResult{DistanceM: dist, DurationSec: dist}, nil
}

type fakePlanRepo struct {
	plan        *models.Plan
	savedResult *models.PlanResult
	savedPlan   *models.Plan
	failedCode  string
	statuses    []string
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *models.Plan) error { return nil }

func (f *fakePlanRepo) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	return f.plan, nil
}

func (f *fakePlanRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakePlanRepo) MarkFailed(ctx context.Context, id, errorCode, errorContext string) error {
	f.failedCode = errorCode
	return nil
}

func (f *fakePlanRepo) SaveBuildResult(ctx context.Context, plan *models.Plan, result models.PlanResult) error {
	f.savedPlan = plan
	f.savedResult = &result
	return nil
}

func (f *fakePlanRepo) ListStops(ctx context.Context, planID string) ([]models.Stop, error) {
	return nil, nil
}

func (f *fakePlanRepo) ListLegs(ctx context.Context, planID string) ([]models.Leg, error) {
	return nil, nil
}

func (f *fakePlanRepo) ClaimNextDraft(ctx context.Context) (*models.Plan, error) {
	return nil, nil
}

func testPlan() *models.Plan {
	return &models.Plan{
		ID:           "plan-1",
		Status:       models.PlanStatusDraft,
		StartTimeUTC: time.Date(2026, 7, 30, 16, 0, 0, 0, time.UTC),
		Timezone:     "Europe/Madrid",
		InputsJSON: models.GenerateInputs{
			CityName:      "Madrid",
			UserLocation:  models.LatLng{Lat: 40.4168, Lng: -3.7038},
			Intent:        "date_night",
			WhenSelection: "now",
			DiscoveryMode: "tourist",
			DurationHours: 3,
			Energy:        2,
		},
	}
}

func testPlaces() []providers.RawPlace {
	rating := 4.5
	total := 120
	return []providers.RawPlace{
		{PlaceID: "p1", Name: "Bar Uno", Lat: 40.417, Lng: -3.704, Rating: &rating, UserRatingsTotal: &total, Types: []string{"bar"}, BusinessStatus: "OPERATIONAL"},
		{PlaceID: "p2", Name: "Restaurante Dos", Lat: 40.418, Lng: -3.703, Rating: &rating, UserRatingsTotal: &total, Types: []string{"restaurant"}, BusinessStatus: "OPERATIONAL"},
	}
}

func TestShell_GeneratePlan_BuildsLegsAndMarksReady(t *testing.T) {
	repo := &fakePlanRepo{plan: testPlan()}
	engine := &planner.Engine{
		Candidates: providers.NewCandidateSource(fakePlaces{places: testPlaces()}, nil, nil),
		Weather:    fakeWeather{snapshot: models.WeatherSnapshot{Temp: 20, FeelsLike: 20, Condition: "clear", Confidence: "high"}},
	}

	shell := &Shell{Engine: engine, Plans: repo, Directions: fakeDirections{}}

	err := shell.GeneratePlan(context.Background(), "plan-1")
	require.NoError(t, err)

	require.NotNil(t, repo.savedResult)
	assert.Contains(t, repo.statuses, models.PlanStatusBuilding)
	assert.Equal(t, "deterministic", repo.savedPlan.GenerationMethod)
	assert.NotNil(t, repo.savedPlan.WeatherSnapshotJSON)

	if len(repo.savedResult.ChosenStops) >= 2 {
		require.Len(t, repo.savedResult.Legs, len(repo.savedResult.ChosenStops)-1)
		for _, leg := range repo.savedResult.Legs {
			assert.Contains(t, leg.Modes, "walk")
			assert.Contains(t, leg.Modes, "drive")
			assert.NotEmpty(t, leg.RecommendedMode)
		}
	}
}

func TestShell_GeneratePlan_RejectsMissingCity(t *testing.T) {
	plan := testPlan()
	plan.InputsJSON.CityName = ""
	repo := &fakePlanRepo{plan: plan}
	engine := &planner.Engine{
		Candidates: providers.NewCandidateSource(fakePlaces{places: testPlaces()}, nil, nil),
		Weather:    fakeWeather{snapshot: models.WeatherSnapshot{Confidence: "high"}},
	}

	shell := &Shell{Engine: engine, Plans: repo, Directions: fakeDirections{}}

	err := shell.GeneratePlan(context.Background(), "plan-1")
	require.Error(t, err)
	assert.Equal(t, "InvalidInput", repo.failedCode)
	assert.Nil(t, repo.savedResult)
}

func TestRecommendMode_PrefersWalkWithinThreshold(t *testing.T) {
	modes := map[string]models.LegModeResult{
		"walk":  {DistanceM: 900},
		"drive": {DistanceM: 3000},
	}
	mode, _ := recommendMode(modes, false)
	assert.Equal(t, "walk", mode)
}

func TestRecommendMode_NoWalkConstraintForcesDrive(t *testing.T) {
	modes := map[string]models.LegModeResult{
		"walk":  {DistanceM: 200},
		"drive": {DistanceM: 1500},
	}
	mode, reason := recommendMode(modes, true)
	assert.Equal(t, "drive", mode)
	assert.Contains(t, reason, "no_walk")
}

func TestRecommendMode_FallsBackToDriveForLongWalks(t *testing.T) {
	modes := map[string]models.LegModeResult{
		"walk":  {DistanceM: 4000},
		"drive": {DistanceM: 3500},
	}
	mode, _ := recommendMode(modes, false)
	assert.Equal(t, "drive", mode)
}
