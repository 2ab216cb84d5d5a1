// Package tasks is the task-queue shell around the planning engine: it
// owns persistence, leg-building across travel modes, and the auxiliary
// plan-mutation contracts (swap, delay, undo) that sit outside a single
// generate() call.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/planner"
	"github.com/exotic-travel-booking/backend/internal/providers"
	"github.com/exotic-travel-booking/backend/internal/repositories"
	"github.com/exotic-travel-booking/backend/internal/selector"
)

// defaultTimezone is used whenever a plan's stored timezone name fails to
// load, matching the engine's own fallback convention.
const defaultTimezone = "Europe/Berlin"

// Shell wires the planning engine to persistence and the downstream
// leg-building / City DNA / local guide steps that happen once per build.
type Shell struct {
	Engine     *planner.Engine
	Plans      repositories.PlanRepository
	Directions providers.DirectionsProvider
	CityDNA    *selector.CityDNAProvider
	Guide      *selector.LocalGuideBuilder
	Metrics    func(ctx context.Context, name string)
}

func (s *Shell) incr(ctx context.Context, name string) {
	if s.Metrics != nil {
		s.Metrics(ctx, name)
	}
}

// GeneratePlan reads a plan's stored inputs, runs the engine, builds legs,
// and persists the result in one atomic transaction. On any unhandled
// failure the plan is marked failed with a truncated error context,
// matching spec.md's "fatal build error" path; the caller's queue is
// expected to retry up to 3 times with backoff.
func (s *Shell) GeneratePlan(ctx context.Context, planID string) error {
	start := time.Now()

	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("generate plan %s: %w", planID, err)
	}

	if err := s.Plans.UpdateStatus(ctx, planID, models.PlanStatusBuilding); err != nil {
		return fmt.Errorf("generate plan %s: %w", planID, err)
	}

	dtLocal := localStartTime(plan)

	weather := s.Engine.ResolveWeather(ctx, plan.InputsJSON, models.GenerateContext{DtLocal: dtLocal})
	genCtx := models.GenerateContext{DtLocal: dtLocal, Weather: &weather}

	result, err := s.Engine.Generate(ctx, plan.InputsJSON, genCtx)
	if err != nil {
		s.incr(ctx, "plan_generation_failures")
		_ = s.Plans.MarkFailed(ctx, planID, "InvalidInput", err.Error())
		return fmt.Errorf("generate plan %s: %w", planID, err)
	}

	result.Legs = s.buildLegs(ctx, result.ChosenStops, plan.InputsJSON.Constraints, languageOrDefault(plan.InputsJSON.Language))

	plan.WeatherSnapshotJSON = &weather
	if plan.InputsJSON.UseLLM {
		plan.GenerationMethod = "llm"
		plan.LLMAttempts++
	} else {
		plan.GenerationMethod = "deterministic"
	}
	plan.OptimizationMetadata = s.buildMetadata(ctx, plan, result)

	if err := s.Plans.SaveBuildResult(ctx, plan, result); err != nil {
		s.incr(ctx, "plan_generation_failures")
		_ = s.Plans.MarkFailed(ctx, planID, "PersistenceError", err.Error())
		return fmt.Errorf("generate plan %s: %w", planID, err)
	}

	s.incr(ctx, "plan_generation_time")
	_ = time.Since(start) // the elapsed build time is computed but not recorded
	return nil
}

// RegeneratePlan re-runs the same build. A plan only ever has one
// current set of stops/legs, so this is a plain delegate.
func (s *Shell) RegeneratePlan(ctx context.Context, planID string) error {
	return s.GeneratePlan(ctx, planID)
}

// languageOrDefault falls back to Spanish, the original catalogue's primary
// language, when a plan's inputs didn't specify one.
func languageOrDefault(language string) string {
	if language == "" {
		return "es"
	}
	return language
}

func localStartTime(plan *models.Plan) time.Time {
	loc, err := time.LoadLocation(plan.Timezone)
	if err != nil {
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	if loc == nil {
		loc = time.UTC
	}
	return plan.StartTimeUTC.In(loc)
}

// buildMetadata assembles the optimization_metadata payload: slots, debug
// info, City DNA, and the local guide, keyed the way the stored plan
// exposes them to the presentation layer.
func (s *Shell) buildMetadata(ctx context.Context, plan *models.Plan, result models.PlanResult) map[string]any {
	optionsBySlot := make(map[string][]models.RankedOption, len(result.FilledSlots))
	for _, slot := range result.FilledSlots {
		optionsBySlot[slot.SlotID] = slot.Options
	}

	v3 := map[string]any{
		"slots":           result.FilledSlots,
		"debug":           result.Debug,
		"options_by_slot": optionsBySlot,
	}

	if s.CityDNA != nil {
		dna := s.CityDNA.Get(ctx, plan.InputsJSON.CityName, languageOrDefault(plan.InputsJSON.Language))
		v3["city_dna"] = dna

		if s.Guide != nil {
			v3["guide"] = s.Guide.Build(ctx, dna, plan.InputsJSON.Intent, plan.WeatherSnapshotJSON, optionsBySlot, plan.InputsJSON.Constraints)
		}
	}

	return map[string]any{"v3": v3}
}
