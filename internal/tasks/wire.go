package tasks

import (
	"context"
	"fmt"

	"github.com/exotic-travel-booking/backend/internal/cache"
	"github.com/exotic-travel-booking/backend/internal/config"
	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/planner"
	"github.com/exotic-travel-booking/backend/internal/providers"
	"github.com/exotic-travel-booking/backend/internal/repositories"
	"github.com/exotic-travel-booking/backend/internal/selector"
	"github.com/exotic-travel-booking/backend/pkg/database"
)

// Build wires the full planning stack — cache, external providers, the
// optional LLM strategy, the engine, and persistence — into a ready-to-run
// Shell. It is the single place cmd/server and cmd/planner-worker both
// call, so the two entrypoints can never drift in how they assemble it.
func Build(cfg *config.Config, db *database.DB, incr func(ctx context.Context, name string)) (*Shell, error) {
	redisClient, err := cache.NewCache(cache.Config{
		Host:     cfg.Planner.RedisHost,
		Port:     cfg.Planner.RedisPort,
		Password: cfg.Planner.RedisPassword,
		DB:       cfg.Planner.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("wire planner: redis: %w", err)
	}
	planCache := providers.NewRedisCache(redisClient)

	placesProvider, err := providers.NewGooglePlaces(cfg.Planner.GoogleMapsAPIKey, planCache, incr)
	if err != nil {
		return nil, fmt.Errorf("wire planner: places: %w", err)
	}
	weatherProvider, err := providers.NewOpenMeteoWeather(planCache, incr)
	if err != nil {
		return nil, fmt.Errorf("wire planner: weather: %w", err)
	}
	directionsProvider, err := providers.NewGoogleDirections(cfg.Planner.GoogleMapsAPIKey, planCache, incr)
	if err != nil {
		return nil, fmt.Errorf("wire planner: directions: %w", err)
	}

	llmProvider := buildLLMProvider(cfg)

	engine := &planner.Engine{
		Candidates:  providers.NewCandidateSource(placesProvider, planCache, incr),
		Weather:     weatherProvider,
		LLMProvider: llmProvider,
		Metrics:     incr,
	}

	plans := repositories.NewPlanRepository(db)

	cityDNA := selector.NewCityDNAProvider(llmProvider, cfg.Planner.LLMModel, planCache)
	guide := selector.NewLocalGuideBuilder(llmProvider, cfg.Planner.LLMModel)

	return &Shell{
		Engine:     engine,
		Plans:      plans,
		Directions: directionsProvider,
		CityDNA:    cityDNA,
		Guide:      guide,
		Metrics:    incr,
	}, nil
}

// buildLLMProvider prefers OpenAI, then Anthropic, and runs fully
// deterministic when neither API key is configured.
func buildLLMProvider(cfg *config.Config) llmproviders.LLMProvider {
	switch {
	case cfg.Planner.OpenAIAPIKey != "":
		provider, err := llmproviders.NewOpenAIProvider(&llmproviders.LLMConfig{
			Provider: "openai",
			APIKey:   cfg.Planner.OpenAIAPIKey,
			Model:    cfg.Planner.LLMModel,
		})
		if err != nil {
			return nil
		}
		return provider
	case cfg.Planner.AnthropicAPIKey != "":
		provider, err := llmproviders.NewAnthropicProvider(&llmproviders.LLMConfig{
			Provider: "anthropic",
			APIKey:   cfg.Planner.AnthropicAPIKey,
			Model:    cfg.Planner.LLMModel,
		})
		if err != nil {
			return nil
		}
		return provider
	default:
		return nil
	}
}
