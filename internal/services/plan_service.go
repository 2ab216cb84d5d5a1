package services

import (
	"context"
	"fmt"
	"time"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/repositories"
	"github.com/exotic-travel-booking/backend/internal/tasks"
)

// PlanBuilder runs a plan's full build synchronously. In production this
// is backed by a queue (cmd/planner-worker); the HTTP layer only needs the
// same contract to trigger a build inline for low-traffic deployments.
type PlanBuilder interface {
	GeneratePlan(ctx context.Context, planID string) error
	RegeneratePlan(ctx context.Context, planID string) error
	SwapStop(ctx context.Context, planID, stopID, reason string) error
	DelayReplan(ctx context.Context, planID, stopID string, deltaMin int) error
	UndoSwap(ctx context.Context, planID, stopID string) error
}

var _ PlanBuilder = (*tasks.Shell)(nil)

// PlanService exposes the itinerary-plan lifecycle to the HTTP layer:
// creating a draft, kicking off a build, and reading back the result.
type PlanService struct {
	plans   repositories.PlanRepository
	builder PlanBuilder
}

// NewPlanService creates a new plan service.
func NewPlanService(plans repositories.PlanRepository, builder PlanBuilder) *PlanService {
	return &PlanService{plans: plans, builder: builder}
}

// CreateAndGenerate creates a draft plan and runs its build inline,
// returning the plan row once the build has finished (ready or failed).
func (s *PlanService) CreateAndGenerate(ctx context.Context, inputs models.GenerateInputs, startTimeUTC time.Time, timezone string, userID int) (*models.Plan, error) {
	if err := validateGenerateInputs(inputs); err != nil {
		return nil, err
	}

	plan := &models.Plan{
		UserID:       userID,
		InputsJSON:   inputs,
		StartTimeUTC: startTimeUTC,
		Timezone:     timezone,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	if err := s.builder.GeneratePlan(ctx, plan.ID); err != nil {
		// The build records its own failure on the plan row; re-reading it
		// here lets the caller see the status/last_error_* it left behind.
		refreshed, getErr := s.plans.GetByID(ctx, plan.ID)
		if getErr == nil {
			return refreshed, nil
		}
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	return s.plans.GetByID(ctx, plan.ID)
}

// Regenerate re-runs a plan's build from its stored inputs.
func (s *PlanService) Regenerate(ctx context.Context, planID string) (*models.Plan, error) {
	if err := s.builder.RegeneratePlan(ctx, planID); err != nil {
		return nil, fmt.Errorf("failed to regenerate plan: %w", err)
	}
	return s.plans.GetByID(ctx, planID)
}

// Get retrieves a plan along with its current stops and legs.
func (s *PlanService) Get(ctx context.Context, planID string) (*models.Plan, []models.Stop, []models.Leg, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get plan: %w", err)
	}
	stops, err := s.plans.ListStops(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list stops: %w", err)
	}
	legs, err := s.plans.ListLegs(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list legs: %w", err)
	}
	return plan, stops, legs, nil
}

// SwapStop asks the builder to replace one stop.
func (s *PlanService) SwapStop(ctx context.Context, planID, stopID, reason string) error {
	return s.builder.SwapStop(ctx, planID, stopID, reason)
}

// DelayReplan asks the builder to shift a stop and cascade the delay.
func (s *PlanService) DelayReplan(ctx context.Context, planID, stopID string, deltaMin int) error {
	return s.builder.DelayReplan(ctx, planID, stopID, deltaMin)
}

// UndoSwap asks the builder to revert the last swap for a stop.
func (s *PlanService) UndoSwap(ctx context.Context, planID, stopID string) error {
	return s.builder.UndoSwap(ctx, planID, stopID)
}

func validateGenerateInputs(inputs models.GenerateInputs) error {
	if inputs.CityName == "" {
		return fmt.Errorf("city_name is required")
	}
	if inputs.UserLocation.Lat == 0 && inputs.UserLocation.Lng == 0 {
		return fmt.Errorf("user_location is required")
	}
	return nil
}
