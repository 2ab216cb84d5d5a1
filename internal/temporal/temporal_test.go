package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exotic-travel-booking/backend/internal/models"
)

func TestBuildWeatherProfile_MissingFeelsLike(t *testing.T) {
	profile := BuildWeatherProfile(models.WeatherSnapshot{Condition: "light rain"}, false)

	assert.True(t, profile.Pleasant)
	assert.False(t, profile.Cold)
	assert.False(t, profile.VeryCold)
	assert.True(t, profile.Rain)
	assert.Equal(t, "low", profile.Confidence)
}

func TestBuildWeatherProfile_Pleasant(t *testing.T) {
	profile := BuildWeatherProfile(models.WeatherSnapshot{Temp: 18, FeelsLike: 18, Condition: "clear", Confidence: "high"}, true)

	assert.True(t, profile.Pleasant)
	assert.False(t, profile.Cold)
}

func TestBuildWeatherProfile_VeryCold(t *testing.T) {
	profile := BuildWeatherProfile(models.WeatherSnapshot{FeelsLike: -1}, true)

	assert.True(t, profile.Cold)
	assert.True(t, profile.VeryCold)
	assert.False(t, profile.Pleasant)
}

func TestGetDaypart(t *testing.T) {
	cases := map[int]string{
		6: DaypartMorning, 10: DaypartMorning,
		11: DaypartMidday, 14: DaypartMidday,
		15: DaypartAfternoon, 17: DaypartAfternoon,
		18: DaypartEvening, 21: DaypartEvening,
		22: DaypartLate, 3: DaypartLate,
	}
	for hour, want := range cases {
		dt := time.Date(2026, 7, 30, hour, 0, 0, 0, time.UTC)
		assert.Equal(t, want, GetDaypart(dt), "hour %d", hour)
	}
}

func TestIsCategorySuitable(t *testing.T) {
	assert.False(t, IsCategorySuitable("bar", DaypartMorning))
	assert.True(t, IsCategorySuitable("bar", DaypartLate))
	assert.True(t, IsCategorySuitable("unlisted_category", DaypartMorning))
}

func TestComputeOpenStatus_HoursMissing(t *testing.T) {
	status := ComputeOpenStatus(nil, "", time.Now(), 60)
	assert.Nil(t, status.IsOpen)
	assert.Equal(t, "hours_missing", status.Reason)
}

func TestComputeOpenStatus_BusinessStatusOverrides(t *testing.T) {
	oh := &models.OpeningHours{Periods: []models.OpeningPeriod{
		{Open: models.OpeningPoint{Day: 0, Time: "0000"}, Close: models.OpeningPoint{Day: 0, Time: "2359"}},
	}}
	status := ComputeOpenStatus(oh, "CLOSED_PERMANENTLY", time.Now(), 60)
	require.NotNil(t, status.IsOpen)
	assert.False(t, *status.IsOpen)
	assert.Equal(t, "permanently_closed", status.Reason)
}

func TestComputeOpenStatus_OpenForSlot(t *testing.T) {
	start := time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC) // Thursday
	wd := int(start.Weekday())
	oh := &models.OpeningHours{Periods: []models.OpeningPeriod{
		{Open: models.OpeningPoint{Day: wd, Time: "0900"}, Close: models.OpeningPoint{Day: wd, Time: "1800"}},
	}}

	status := ComputeOpenStatus(oh, "", start, 60)
	require.NotNil(t, status.IsOpen)
	assert.True(t, *status.IsOpen)
	assert.Equal(t, "high", status.Confidence)
	assert.Equal(t, "open_for_slot", status.Reason)
}

func TestComputeOpenStatus_ClosingDuringSlot(t *testing.T) {
	start := time.Date(2026, 7, 30, 17, 30, 0, 0, time.UTC)
	wd := int(start.Weekday())
	oh := &models.OpeningHours{Periods: []models.OpeningPeriod{
		{Open: models.OpeningPoint{Day: wd, Time: "0900"}, Close: models.OpeningPoint{Day: wd, Time: "1800"}},
	}}

	status := ComputeOpenStatus(oh, "", start, 60)
	require.NotNil(t, status.IsOpen)
	assert.True(t, *status.IsOpen)
	assert.Equal(t, "medium", status.Confidence)
	assert.Equal(t, "open_but_closing_during_slot", status.Reason)
}

func TestComputeOpenStatus_ClosedForSlot(t *testing.T) {
	start := time.Date(2026, 7, 30, 23, 0, 0, 0, time.UTC)
	wd := int(start.Weekday())
	oh := &models.OpeningHours{Periods: []models.OpeningPeriod{
		{Open: models.OpeningPoint{Day: wd, Time: "0900"}, Close: models.OpeningPoint{Day: wd, Time: "1800"}},
	}}

	status := ComputeOpenStatus(oh, "", start, 60)
	require.NotNil(t, status.IsOpen)
	assert.False(t, *status.IsOpen)
	assert.Equal(t, "closed_for_slot", status.Reason)
}

func TestComputeOpenStatus_OvernightCrossing(t *testing.T) {
	start := time.Date(2026, 7, 30, 23, 30, 0, 0, time.UTC)
	wd := int(start.Weekday())
	oh := &models.OpeningHours{Periods: []models.OpeningPeriod{
		{Open: models.OpeningPoint{Day: wd, Time: "2200"}, Close: models.OpeningPoint{Day: (wd + 1) % 7, Time: "0300"}},
	}}

	status := ComputeOpenStatus(oh, "", start, 60)
	require.NotNil(t, status.IsOpen)
	assert.True(t, *status.IsOpen)
	assert.Equal(t, "open_for_slot", status.Reason)
}
