package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// OpenMeteoWeather is a WeatherProvider backed by the Open-Meteo API. Results
// are cached briefly since a plan build only needs a current snapshot, not a
// forecast series.
type OpenMeteoWeather struct {
	client omgo.Client
	cache  Cache
	ttl    time.Duration
	incr   func(ctx context.Context, name string)
}

// NewOpenMeteoWeather builds a weather provider with a short-lived cache to
// avoid refetching for concurrent slot builds against the same location.
func NewOpenMeteoWeather(cache Cache, incr func(ctx context.Context, name string)) (*OpenMeteoWeather, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("open-meteo client: %w", err)
	}
	return &OpenMeteoWeather{client: client, cache: cache, ttl: 10 * time.Minute, incr: incr}, nil
}

func weatherCacheKey(loc models.LatLng) string {
	return fmt.Sprintf("weather:v1:%.3f:%.3f", loc.Lat, loc.Lng)
}

// Snapshot fetches current conditions, using a short cache to absorb bursts
// of slot builds for the same city. A provider failure is returned as an
// error; the planner engine answers it with a seasonal fallback snapshot.
func (w *OpenMeteoWeather) Snapshot(ctx context.Context, loc models.LatLng) (models.WeatherSnapshot, error) {
	var cached models.WeatherSnapshot
	key := weatherCacheKey(loc)
	if w.cache != nil {
		if err := w.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	if w.incr != nil {
		w.incr(ctx, "weather_api_calls")
	}

	location, err := omgo.NewLocation(loc.Lat, loc.Lng)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("open-meteo location: %w", err)
	}

	forecast, err := w.client.Forecast(ctx, location, &omgo.Options{
		HourlyMetrics: []string{"temperature_2m", "apparent_temperature", "precipitation", "rain", "snowfall", "wind_speed_10m", "weather_code"},
		TimeZone:      "auto",
	})
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("open-meteo forecast: %w", err)
	}

	snap := snapshotFromForecast(forecast)
	if w.cache != nil {
		_ = w.cache.Set(ctx, key, snap, w.ttl)
	}
	return snap, nil
}

func snapshotFromForecast(f omgo.Forecast) models.WeatherSnapshot {
	temp := f.CurrentWeather.Temperature
	feelsLike := temp
	code := f.CurrentWeather.WeatherCode

	nowIdx := -1
	target := f.CurrentWeather.Time.Time.Truncate(time.Hour)
	for i, t := range f.HourlyTimes {
		if t.Equal(target) {
			nowIdx = i
			break
		}
	}
	if nowIdx >= 0 {
		if v, ok := f.HourlyMetrics["apparent_temperature"]; ok && nowIdx < len(v) {
			feelsLike = v[nowIdx]
		}
	}

	rain, snow, windy := wmoFlags(code, f.CurrentWeather.WindSpeed)

	return models.WeatherSnapshot{
		Temp:       temp,
		FeelsLike:  feelsLike,
		Condition:  wmoCondition(code),
		IsRaining:  rain,
		IsSnowing:  snow,
		Windy:      windy,
		Confidence: "high",
		Source:     "open-meteo",
	}
}

// wmoFlags classifies a WMO weather code into the coarse rain/snow buckets
// the temporal package reasons about, per the WMO 4677 code table.
func wmoFlags(code int, windSpeedKmh float64) (rain, snow, windy bool) {
	switch {
	case code >= 71 && code <= 77, code == 85, code == 86:
		snow = true
	case code >= 51 && code <= 67, code >= 80 && code <= 82, code >= 95:
		rain = true
	}
	windy = windSpeedKmh >= 30
	return
}

func wmoCondition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly_cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77, code == 85, code == 86:
		return "snow"
	case code >= 80 && code <= 82:
		return "showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
