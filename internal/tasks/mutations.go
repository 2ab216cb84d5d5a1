package tasks

import (
	"context"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// SwapStop handles a request to replace a single stop with the next-best
// ranked alternative for its slot. It is a stub, as in the original task
// queue: it changes no stop or leg and only sets plan.status back to
// ready, so a stuck "swapping" plan never blocks the UI.
func (s *Shell) SwapStop(ctx context.Context, planID, stopID, reason string) error {
	// TODO: pick the next-ranked option for stopID's slot, rebuild the two
	// adjacent legs, and persist without touching the rest of the plan.
	return s.Plans.UpdateStatus(ctx, planID, models.PlanStatusReady)
}

// DelayReplan handles a request to shift a stop's start time and cascade the
// delay through the remaining stops of the day. Stub, mirroring the upstream
// task queue: it changes no stop time and only sets plan.status to ready.
func (s *Shell) DelayReplan(ctx context.Context, planID, stopID string, deltaMin int) error {
	// TODO: shift stopID and every later stop by deltaMin, re-checking open
	// status for the new times, and persist.
	return s.Plans.UpdateStatus(ctx, planID, models.PlanStatusReady)
}

// UndoSwap handles a request to revert the most recent SwapStop for a given
// stop. Stub, mirroring the upstream task queue: it changes no stop and only
// sets plan.status to ready.
func (s *Shell) UndoSwap(ctx context.Context, planID, stopID string) error {
	// TODO: restore the previously selected place_id for stopID and the
	// legs touching it.
	return s.Plans.UpdateStatus(ctx, planID, models.PlanStatusReady)
}
