package providers

import (
	"context"
	"fmt"
	"time"

	gmaps "googlemaps.github.io/maps"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// directionsTTL matches spec: directions are cached 10 minutes, keyed by
// rounded coordinates, mode, and language — route geometry and ETAs don't
// meaningfully change inside that window for a pedestrian/cycling/driving leg.
const directionsTTL = 10 * time.Minute

// GoogleDirections is a DirectionsProvider backed by the Google Directions API.
type GoogleDirections struct {
	client *gmaps.Client
	cache  Cache
	incr   func(ctx context.Context, name string)
}

// NewGoogleDirections constructs a client from an API key. cache may be nil,
// in which case every leg is fetched live.
func NewGoogleDirections(apiKey string, cache Cache, incr func(ctx context.Context, name string)) (*GoogleDirections, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google directions client: %w", err)
	}
	return &GoogleDirections{client: client, cache: cache, incr: incr}, nil
}

var travelModes = map[string]gmaps.Mode{
	"walk":  gmaps.TravelModeWalking,
	"bike":  gmaps.TravelModeBicycling,
	"drive": gmaps.TravelModeDriving,
}

func directionsCacheKey(origin, destination models.LatLng, mode, language string) string {
	return fmt.Sprintf("directions:v1:%.5f:%.5f:%.5f:%.5f:%s:%s",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng, mode, language)
}

func (g *GoogleDirections) Leg(ctx context.Context, origin, destination models.LatLng, mode, language string) (models.LegModeResult, error) {
	travelMode, ok := travelModes[mode]
	if !ok {
		return models.LegModeResult{}, fmt.Errorf("unsupported travel mode %q", mode)
	}

	key := directionsCacheKey(origin, destination, mode, language)
	if g.cache != nil {
		var cached models.LegModeResult
		if err := g.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	req := &gmaps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        travelMode,
		Language:    language,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return models.LegModeResult{}, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return models.LegModeResult{}, fmt.Errorf("directions: no route found")
	}

	leg := routes[0].Legs[0]
	result := models.LegModeResult{
		DistanceM:   leg.Distance.Meters,
		DurationSec: int(leg.Duration.Seconds()),
		Polyline:    routes[0].OverviewPolyline.Points,
	}

	if g.cache != nil {
		_ = g.cache.Set(ctx, key, result, directionsTTL)
	}
	return result, nil
}
