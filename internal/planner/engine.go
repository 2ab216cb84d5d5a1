// Package planner orchestrates template selection, slot construction,
// candidate ranking, and stop ordering into a single itinerary build.
package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/providers"
	"github.com/exotic-travel-booking/backend/internal/scorer"
	"github.com/exotic-travel-booking/backend/internal/selector"
	"github.com/exotic-travel-booking/backend/internal/temporal"
	"github.com/exotic-travel-booking/backend/internal/templates"
)

const (
	candidateRadiusM  = 2500
	candidateEnrichN  = 25
	slotOptionKeepTop = 10
)

// Engine is the planning orchestrator. It never imports a vendor SDK
// directly — only the provider and strategy abstractions below it.
type Engine struct {
	Candidates  *providers.CandidateSource
	Weather     providers.WeatherProvider
	LLMProvider llmproviders.LLMProvider
	Metrics     func(ctx context.Context, name string)
}

func (e *Engine) incr(ctx context.Context, name string) {
	if e.Metrics != nil {
		e.Metrics(ctx, name)
	}
}

// Generate runs the full build: template selection, slot construction,
// candidate ranking, selection, and stop ordering. It never returns an
// error for a dependency failure — only for invalid input.
func (e *Engine) Generate(ctx context.Context, inputs models.GenerateInputs, genCtx models.GenerateContext) (models.PlanResult, error) {
	if err := validateInputs(inputs); err != nil {
		return models.PlanResult{}, err
	}

	e.incr(ctx, "plan_generation_count")

	hour := genCtx.DtLocal.Hour()
	daypart := temporal.GetDaypart(genCtx.DtLocal)
	energyLevel := resolveEnergy(inputs.Energy)

	weather := e.resolveWeather(ctx, inputs, genCtx)
	profile := temporal.BuildWeatherProfile(weather, true)

	templateKey, slotSpecs := templates.ChooseTemplate(inputs.Intent, inputs.WhenSelection, hour, inputs.DurationHours, energyLevel)
	slots := buildSlots(genCtx.DtLocal, slotSpecs, profile, inputs.Constraints)

	rankedSlots := make([]models.RankedSlot, 0, len(slots))
	for _, slot := range slots {
		rankedSlots = append(rankedSlots, e.rankSlot(ctx, slot, inputs, daypart))
	}

	filled := e.fill(ctx, rankedSlots, weather, daypart, inputs)

	stops := materialize(filled)
	stops = assignOrderIndex(nearestNeighbor(stops))

	return models.PlanResult{
		FilledSlots: filled,
		ChosenStops: stops,
		Legs:        []models.Leg{},
		Debug: models.PlanDebug{
			Engine:            "planner.Engine",
			Template:          templateKey,
			Intent:            inputs.Intent,
			Daypart:           daypart,
			SlotCount:         len(slots),
			DurationHours:     inputs.DurationHours,
			EnergyLevel:       energyLevel,
			WeatherConfidence: weather.Confidence,
		},
	}, nil
}

func validateInputs(inputs models.GenerateInputs) error {
	if inputs.CityName == "" {
		return fmt.Errorf("%w: city_name is required", ErrInvalidInput)
	}
	if inputs.UserLocation.Lat == 0 && inputs.UserLocation.Lng == 0 {
		return fmt.Errorf("%w: user_location is required", ErrInvalidInput)
	}
	return nil
}

// ResolveWeather returns the context-supplied weather override if present,
// otherwise fetches one, falling back to a seasonal guess on any failure.
// Exported so a task shell can resolve weather once and reuse the same
// snapshot for persistence and for City DNA / local guide generation.
func (e *Engine) ResolveWeather(ctx context.Context, inputs models.GenerateInputs, genCtx models.GenerateContext) models.WeatherSnapshot {
	return e.resolveWeather(ctx, inputs, genCtx)
}

func (e *Engine) resolveWeather(ctx context.Context, inputs models.GenerateInputs, genCtx models.GenerateContext) models.WeatherSnapshot {
	if genCtx.Weather != nil {
		return *genCtx.Weather
	}
	if e.Weather == nil {
		return seasonalFallbackWeather(genCtx.DtLocal)
	}

	e.incr(ctx, "weather_api_calls")
	snapshot, err := e.Weather.Snapshot(ctx, inputs.UserLocation)
	if err != nil {
		e.incr(ctx, "plan_generation_failures")
		return seasonalFallbackWeather(genCtx.DtLocal)
	}
	return snapshot
}

// rankSlot fetches candidates for one slot, drops any known to be closed,
// scores the remainder, and retains the top slotOptionKeepTop as options.
func (e *Engine) rankSlot(ctx context.Context, slot models.Slot, inputs models.GenerateInputs, daypart string) models.RankedSlot {
	places, err := e.Candidates.FetchCandidates(ctx, inputs.UserLocation, slot.Categories, candidateRadiusM, true, candidateEnrichN, inputs.Language)
	if err != nil {
		e.incr(ctx, "places_api_failures")
		places = nil
	}

	options := make([]models.RankedOption, 0, len(places))
	for _, place := range places {
		status := temporal.ComputeOpenStatus(place.OpeningHours, place.BusinessStatus, slot.Start, slot.DurationMin)
		if status.IsOpen != nil && !*status.IsOpen {
			continue
		}

		distance := providers.DistanceMeters(inputs.UserLocation, models.LatLng{Lat: place.Lat, Lng: place.Lng})
		score := scorer.Score(place, scorer.Input{
			SlotCategories: slot.Categories,
			Daypart:        daypart,
			DiscoveryMode:  inputs.DiscoveryMode,
			Constraints:    slot.Constraints,
			OpenStatus:     status,
			DistanceM:      &distance,
		})

		options = append(options, models.RankedOption{
			Place:          place,
			Score:          score,
			DistanceM:      distance,
			Open:           status.IsOpen,
			OpenConfidence: status.Confidence,
			OpenReason:     status.Reason,
		})
	}

	sort.SliceStable(options, func(i, j int) bool { return options[i].Score > options[j].Score })
	if len(options) > slotOptionKeepTop {
		options = options[:slotOptionKeepTop]
	}

	return models.RankedSlot{Slot: slot, Options: options}
}

// fill dispatches to the LLM selector strategy when requested and
// configured, otherwise the deterministic strategy. The LLM strategy
// already falls back to deterministic internally on any failure.
func (e *Engine) fill(ctx context.Context, slots []models.RankedSlot, weather models.WeatherSnapshot, daypart string, inputs models.GenerateInputs) []models.FilledSlot {
	if inputs.UseLLM && e.LLMProvider != nil {
		llm := selector.NewLLM(e.LLMProvider, inputs.LLMModel)
		return llm.Fill(ctx, slots, &weather, daypart)
	}
	return selector.Deterministic{}.Fill(slots, &weather, daypart)
}

// seasonalFallbackWeather gives a low-confidence guess from month alone,
// used only when the weather provider itself is unreachable.
func seasonalFallbackWeather(dtLocal time.Time) models.WeatherSnapshot {
	var temp float64
	var condition string
	switch dtLocal.Month() {
	case time.December, time.January, time.February:
		temp, condition = 8, "cloudy"
	case time.March, time.April, time.May:
		temp, condition = 15, "partly cloudy"
	case time.June, time.July, time.August:
		temp, condition = 25, "clear"
	default:
		temp, condition = 12, "cloudy"
	}
	return models.WeatherSnapshot{
		Temp:       temp,
		FeelsLike:  temp,
		Condition:  condition,
		Confidence: "low",
		Source:     "fallback",
	}
}
