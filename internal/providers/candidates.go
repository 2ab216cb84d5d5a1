package providers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// maxCategoryQueries bounds how many of a slot's requested categories are
// actually queried against the places provider, to cap per-slot API cost.
const maxCategoryQueries = 6

// candidateTTLBare/candidateTTLEnriched implement spec's candidates() TTL:
// 15 minutes for a plain search, 60 once Place Details enrichment has run,
// since an enriched batch is more expensive to recompute and changes slower.
const (
	candidateTTLBare     = 15 * time.Minute
	candidateTTLEnriched = 60 * time.Minute
)

// CandidateSource fetches and normalizes venue candidates for a slot,
// deduplicating concurrent identical requests and enriching the first N
// results with opening-hours details.
type CandidateSource struct {
	places PlacesProvider
	cache  Cache
	group  singleflight.Group
	incr   func(ctx context.Context, name string)
}

// NewCandidateSource builds a candidate source over a PlacesProvider. cache
// may be nil, in which case every call recomputes the full candidate batch.
func NewCandidateSource(places PlacesProvider, cache Cache, incr func(ctx context.Context, name string)) *CandidateSource {
	return &CandidateSource{places: places, cache: cache, incr: incr}
}

func candidatesCacheKey(userLocation models.LatLng, categories []string, radiusM int, enrichOpeningHours bool) string {
	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)
	return fmt.Sprintf("candidates:v1:%.4f:%.4f:%d:%s:%v",
		userLocation.Lat, userLocation.Lng, radiusM, strings.Join(sorted, ","), enrichOpeningHours)
}

// FetchCandidates returns normalized, strictly category-filtered places
// within radiusM of userLocation across the given categories (first six
// only), optionally enriching the first enrichLimit results with Place
// Details for opening hours and business status. The combined batch is
// cached keyed by location, sorted category set, and radius.
func (c *CandidateSource) FetchCandidates(ctx context.Context, userLocation models.LatLng, categories []string, radiusM int, enrichOpeningHours bool, enrichLimit int, language string) ([]models.Place, error) {
	key := candidatesCacheKey(userLocation, categories, radiusM, enrichOpeningHours)
	if c.cache != nil {
		var cached []models.Place
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	seen := make(map[string]bool)
	var normalized []models.Place

	queried := categories
	if len(queried) > maxCategoryQueries {
		queried = queried[:maxCategoryQueries]
	}

	for _, cat := range queried {
		mapping, ok := CategoryToVendorType[cat]
		if !ok {
			continue
		}

		raw, err := c.nearbyDeduped(ctx, userLocation, radiusM, mapping, language)
		if err != nil {
			if c.incr != nil {
				c.incr(ctx, "places_api_failures")
			}
			continue
		}

		for _, p := range raw {
			if p.PlaceID == "" || seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			if place, ok := normalizePlace(p, categories); ok {
				normalized = append(normalized, place)
			}
		}
	}

	if enrichOpeningHours {
		limit := enrichLimit
		if limit > len(normalized) {
			limit = len(normalized)
		}
		for i := 0; i < limit; i++ {
			details, err := c.places.Details(ctx, DetailsQuery{
				PlaceID:  normalized[i].PlaceID,
				Language: language,
				Fields:   []string{"place_id", "name", "geometry/location", "types", "rating", "user_ratings_total", "opening_hours", "business_status"},
			})
			if err != nil {
				continue
			}
			if merged, ok := normalizePlace(details, categories); ok {
				if merged.OpeningHours != nil {
					normalized[i].OpeningHours = merged.OpeningHours
				}
				if len(merged.Types) > 0 {
					normalized[i].Types = merged.Types
				}
				if merged.BusinessStatus != "" {
					normalized[i].BusinessStatus = merged.BusinessStatus
				}
				if merged.Category != "" {
					normalized[i].Category = merged.Category
				}
			}
		}
	}

	if c.cache != nil {
		ttl := candidateTTLBare
		if enrichOpeningHours {
			ttl = candidateTTLEnriched
		}
		_ = c.cache.Set(ctx, key, normalized, ttl)
	}

	return normalized, nil
}

// nearbyDeduped coalesces concurrent identical nearby-search calls (same
// location/radius/type/keyword) into one upstream request.
func (c *CandidateSource) nearbyDeduped(ctx context.Context, loc models.LatLng, radiusM int, mapping CategoryMapping, language string) ([]RawPlace, error) {
	key := fmt.Sprintf("%.4f:%.4f:%d:%s:%s:%s", loc.Lat, loc.Lng, radiusM, mapping.Type, mapping.Keyword, language)

	if c.incr != nil {
		c.incr(ctx, "places_api_calls")
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.places.Nearby(ctx, NearbyQuery{
			Location: loc,
			RadiusM:  radiusM,
			Type:     mapping.Type,
			Keyword:  mapping.Keyword,
			Language: language,
		})
	})
	if err != nil {
		return nil, err
	}
	return v.([]RawPlace), nil
}

// normalizePlace applies strict category filtering: a place is dropped
// entirely if its provider types don't resolve to a known category.
func normalizePlace(p RawPlace, preferredCategories []string) (models.Place, bool) {
	category := GuessCategory(p.Types, preferredCategories)
	if category == "other" {
		return models.Place{}, false
	}

	return models.Place{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Lat:              p.Lat,
		Lng:              p.Lng,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		Types:            p.Types,
		Category:         category,
		OpeningHours:     p.OpeningHours,
		BusinessStatus:   p.BusinessStatus,
		PhotoReference:   p.PhotoReference,
		IsIndoor:         true,
		NoiseLevel:       0,
		TouristDensity:   0,
		LocalFavorite:    false,
	}, true
}
