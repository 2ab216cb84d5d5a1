package providers

import (
	"context"
	"fmt"
	"time"

	gmaps "googlemaps.github.io/maps"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// nearbyTTL/detailsTTL mirror the "without enrichment / with enrichment"
// tiers from spec: a raw nearby-search result is good for 15 minutes, while
// a Place Details enrichment (opening hours, business status) is stabler
// and cached for 60.
const (
	nearbyTTL  = 15 * time.Minute
	detailsTTL = 60 * time.Minute
)

// GooglePlaces is a PlacesProvider backed by the Google Places API.
type GooglePlaces struct {
	client *gmaps.Client
	cache  Cache
	incr   func(ctx context.Context, name string)
}

// NewGooglePlaces constructs a client from an API key. cache may be nil, in
// which case every search and details call goes straight to the vendor API.
func NewGooglePlaces(apiKey string, cache Cache, incr func(ctx context.Context, name string)) (*GooglePlaces, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google places client: %w", err)
	}
	return &GooglePlaces{client: client, cache: cache, incr: incr}, nil
}

func nearbyCacheKey(q NearbyQuery) string {
	return fmt.Sprintf("places:nearby:v1:%.4f:%.4f:%d:%s:%s:%s",
		q.Location.Lat, q.Location.Lng, q.RadiusM, q.Type, q.Keyword, q.Language)
}

func detailsCacheKey(q DetailsQuery) string {
	return fmt.Sprintf("places:details:v1:%s:%s", q.PlaceID, q.Language)
}

func (g *GooglePlaces) Nearby(ctx context.Context, q NearbyQuery) ([]RawPlace, error) {
	key := nearbyCacheKey(q)
	if g.cache != nil {
		var cached []RawPlace
		if err := g.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	req := &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: q.Location.Lat, Lng: q.Location.Lng},
		Radius:   uint(q.RadiusM),
		Language: q.Language,
	}
	if q.Type != "" {
		req.Type = gmaps.PlaceType(q.Type)
	}
	if q.Keyword != "" {
		req.Keyword = q.Keyword
	}

	if g.incr != nil {
		g.incr(ctx, "places_api_calls")
	}

	resp, err := g.client.NearbySearch(ctx, req)
	if err != nil {
		if g.incr != nil {
			g.incr(ctx, "places_api_failures")
		}
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	out := make([]RawPlace, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, rawPlaceFromSearchResult(r))
	}

	if g.cache != nil {
		_ = g.cache.Set(ctx, key, out, nearbyTTL)
	}
	return out, nil
}

func (g *GooglePlaces) Details(ctx context.Context, q DetailsQuery) (RawPlace, error) {
	key := detailsCacheKey(q)
	if g.cache != nil {
		var cached RawPlace
		if err := g.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	fields := []gmaps.PlaceDetailsFieldMask{
		gmaps.PlaceDetailsFieldMaskName,
		gmaps.PlaceDetailsFieldMaskGeometry,
		gmaps.PlaceDetailsFieldMaskOpeningHours,
		gmaps.PlaceDetailsFieldMaskBusinessStatus,
		gmaps.PlaceDetailsFieldMaskTypes,
		gmaps.PlaceDetailsFieldMaskRating,
		gmaps.PlaceDetailsFieldMaskUserRatingsTotal,
		gmaps.PlaceDetailsFieldMaskPhotos,
	}
	req := &gmaps.PlaceDetailsRequest{
		PlaceID:  q.PlaceID,
		Language: q.Language,
		Fields:   fields,
	}

	if g.incr != nil {
		g.incr(ctx, "places_api_calls")
	}

	resp, err := g.client.PlaceDetails(ctx, req)
	if err != nil {
		if g.incr != nil {
			g.incr(ctx, "places_api_failures")
		}
		return RawPlace{}, fmt.Errorf("place details: %w", err)
	}

	place := rawPlaceFromDetailsResult(resp)
	if g.cache != nil {
		_ = g.cache.Set(ctx, key, place, detailsTTL)
	}
	return place, nil
}

func rawPlaceFromSearchResult(r gmaps.PlacesSearchResult) RawPlace {
	place := RawPlace{
		PlaceID:        r.PlaceID,
		Name:           r.Name,
		Lat:            r.Geometry.Location.Lat,
		Lng:            r.Geometry.Location.Lng,
		Types:          r.Types,
		BusinessStatus: string(r.BusinessStatus),
	}
	if r.Rating > 0 {
		v := float64(r.Rating)
		place.Rating = &v
	}
	if r.UserRatingsTotal > 0 {
		v := r.UserRatingsTotal
		place.UserRatingsTotal = &v
	}
	if len(r.Photos) > 0 {
		place.PhotoReference = r.Photos[0].PhotoReference
	}
	if r.OpeningHours != nil {
		place.OpeningHours = openingHoursFromGoogle(r.OpeningHours)
	}
	return place
}

func rawPlaceFromDetailsResult(r gmaps.PlaceDetailsResult) RawPlace {
	place := RawPlace{
		PlaceID:        r.PlaceID,
		Name:           r.Name,
		Lat:            r.Geometry.Location.Lat,
		Lng:            r.Geometry.Location.Lng,
		Types:          r.Types,
		BusinessStatus: string(r.BusinessStatus),
	}
	if r.Rating > 0 {
		v := float64(r.Rating)
		place.Rating = &v
	}
	if r.UserRatingsTotal > 0 {
		v := r.UserRatingsTotal
		place.UserRatingsTotal = &v
	}
	if len(r.Photos) > 0 {
		place.PhotoReference = r.Photos[0].PhotoReference
	}
	if r.OpeningHours != nil {
		place.OpeningHours = openingHoursFromGoogle(r.OpeningHours)
	}
	return place
}

// openingHoursFromGoogle preserves the day convention used throughout the
// temporal evaluator: Google's OpeningHoursOpenClose.Day is already a
// time.Weekday (Sunday=0..Saturday=6), so no remapping is needed here.
func openingHoursFromGoogle(oh *gmaps.OpeningHours) *models.OpeningHours {
	out := &models.OpeningHours{WeekdayText: oh.WeekdayText}
	for _, p := range oh.Periods {
		out.Periods = append(out.Periods, models.OpeningPeriod{
			Open:  models.OpeningPoint{Day: int(p.Open.Day), Time: p.Open.Time},
			Close: models.OpeningPoint{Day: int(p.Close.Day), Time: p.Close.Time},
		})
	}
	return out
}
