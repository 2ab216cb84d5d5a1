package selector

import (
	"context"
	"fmt"
	"strings"
	"time"

	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/providers"
)

// cityDNATTL is the cache lifetime for a successfully built or bundled
// CityDNA; cityDNAFailureTTL is the shorter lifetime used when an LLM
// attempt errors, so the system retries sooner rather than locking in a
// degraded result for a month.
const (
	cityDNATTL        = 30 * 24 * time.Hour
	cityDNAFailureTTL = 6 * time.Hour
)

// CityDNAProvider produces and caches the cultural descriptor for a city.
type CityDNAProvider struct {
	provider llmproviders.LLMProvider
	model    string
	cache    providers.Cache
}

// NewCityDNAProvider builds a provider; provider may be nil, in which case
// Get always returns the bundled static fallback.
func NewCityDNAProvider(provider llmproviders.LLMProvider, model string, cache providers.Cache) *CityDNAProvider {
	return &CityDNAProvider{provider: provider, model: model, cache: cache}
}

func cityDNACacheKey(city, language string) string {
	safeCity := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "_")
	safeLang := strings.ToLower(strings.TrimSpace(language))
	if safeLang == "" {
		safeLang = "es"
	}
	return fmt.Sprintf("city_dna:v1:%s:%s", safeCity, safeLang)
}

// Get returns a cached CityDNA if present, otherwise builds one (via the
// LLM if configured, else the bundled table) and caches it.
func (c *CityDNAProvider) Get(ctx context.Context, city, language string) models.CityDNA {
	key := cityDNACacheKey(city, language)

	var cached models.CityDNA
	if c.cache != nil {
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached
		}
	}

	if c.provider == nil {
		dna := BundledCityDNA(city, language)
		if c.cache != nil {
			_ = c.cache.Set(ctx, key, dna, cityDNATTL)
		}
		return dna
	}

	dna, err := c.buildViaLLM(ctx, city, language)
	if err != nil {
		dna = BundledCityDNA(city, language)
		if c.cache != nil {
			_ = c.cache.Set(ctx, key, dna, cityDNAFailureTTL)
		}
		return dna
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, dna, cityDNATTL)
	}
	return dna
}

func (c *CityDNAProvider) buildViaLLM(ctx context.Context, city, language string) (models.CityDNA, error) {
	req := &llmproviders.GenerateRequest{
		Model: c.model,
		SystemPrompt: "You describe a city's food/drink culture as strict JSON: " +
			`{"food_typicals":[{"name":"","note":""}],"drink_typicals":[{"name":"","note":""}],` +
			`"local_keywords":[],"negative_keywords":[],"etiquette":[],"neighborhood_hints":[{"name":"","vibe":[],"best_for":[]}]}. ` +
			"Do not invent specific venues, only general cultural facts.",
		Messages: []llmproviders.Message{
			{Role: "user", Content: fmt.Sprintf("City: %s. Language: %s.", city, language)},
		},
		Temperature: 0.3,
		MaxTokens:   800,
	}

	resp, err := c.provider.GenerateResponse(ctx, req)
	if err != nil {
		return models.CityDNA{}, fmt.Errorf("city dna: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.CityDNA{}, fmt.Errorf("city dna: empty response")
	}

	dna, err := parseCityDNA(extractJSON(resp.Choices[0].Message.Content))
	if err != nil {
		return models.CityDNA{}, err
	}
	dna.City = city
	dna.Language = language
	return dna, nil
}
