package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/pkg/database"
)

type planRepository struct {
	db *database.DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *database.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create inserts a new plan row in the draft status.
func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	inputsJSON, err := json.Marshal(plan.InputsJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal plan inputs: %w", err)
	}

	query := `
		INSERT INTO plans (user_id, status, inputs_json, start_time_utc, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		plan.UserID, models.PlanStatusDraft, inputsJSON, plan.StartTimeUTC, plan.Timezone,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	plan.Status = models.PlanStatusDraft
	return nil
}

// GetByID retrieves a plan by its ID.
func (r *planRepository) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	query := `
		SELECT id, user_id, status, inputs_json, start_time_utc, timezone,
		       weather_snapshot_json, generation_method, llm_attempts,
		       optimization_metadata, last_error_code, last_error_context,
		       created_at, updated_at
		FROM plans WHERE id = $1`

	var plan models.Plan
	var inputsJSON, weatherJSON, metaJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.UserID, &plan.Status, &inputsJSON, &plan.StartTimeUTC, &plan.Timezone,
		&weatherJSON, &plan.GenerationMethod, &plan.LLMAttempts,
		&metaJSON, &plan.LastErrorCode, &plan.LastErrorContext,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %s: %w", id, err)
	}

	if err := json.Unmarshal(inputsJSON, &plan.InputsJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan inputs: %w", err)
	}
	if len(weatherJSON) > 0 {
		var snapshot models.WeatherSnapshot
		if err := json.Unmarshal(weatherJSON, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weather snapshot: %w", err)
		}
		plan.WeatherSnapshotJSON = &snapshot
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &plan.OptimizationMetadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal optimization metadata: %w", err)
		}
	}

	return &plan, nil
}

// ClaimNextDraft atomically claims the oldest draft plan for a worker,
// marking it "building" in the same statement so two worker processes
// polling concurrently never pick up the same row.
func (r *planRepository) ClaimNextDraft(ctx context.Context) (*models.Plan, error) {
	query := `
		UPDATE plans SET status = $1, updated_at = now()
		WHERE id = (
			SELECT id FROM plans WHERE status = $2
			ORDER BY created_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id, user_id, status, inputs_json, start_time_utc, timezone,
		          weather_snapshot_json, generation_method, llm_attempts,
		          optimization_metadata, last_error_code, last_error_context,
		          created_at, updated_at`

	var plan models.Plan
	var inputsJSON, weatherJSON, metaJSON []byte

	err := r.db.QueryRowContext(ctx, query, models.PlanStatusBuilding, models.PlanStatusDraft).Scan(
		&plan.ID, &plan.UserID, &plan.Status, &inputsJSON, &plan.StartTimeUTC, &plan.Timezone,
		&weatherJSON, &plan.GenerationMethod, &plan.LLMAttempts,
		&metaJSON, &plan.LastErrorCode, &plan.LastErrorContext,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim next draft plan: %w", err)
	}

	if err := json.Unmarshal(inputsJSON, &plan.InputsJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan inputs: %w", err)
	}
	if len(weatherJSON) > 0 {
		var snapshot models.WeatherSnapshot
		if err := json.Unmarshal(weatherJSON, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weather snapshot: %w", err)
		}
		plan.WeatherSnapshotJSON = &snapshot
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &plan.OptimizationMetadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal optimization metadata: %w", err)
		}
	}

	return &plan, nil
}

// UpdateStatus transitions a plan's status field alone.
func (r *planRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE plans SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	return nil
}

// MarkFailed records a terminal build failure: status, error class name,
// and a truncated error context, matching the ≤2000 char bound in
// spec.md's error taxonomy.
func (r *planRepository) MarkFailed(ctx context.Context, id, errorCode, errorContext string) error {
	if len(errorContext) > 2000 {
		errorContext = errorContext[:2000]
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE plans SET status = $1, last_error_code = $2, last_error_context = $3, updated_at = now()
		WHERE id = $4`, models.PlanStatusFailed, errorCode, errorContext, id)
	if err != nil {
		return fmt.Errorf("failed to mark plan failed: %w", err)
	}
	return nil
}

// SaveBuildResult persists a successful build as a single atomic
// transaction: it deletes the plan's prior stops/legs and inserts the new
// set, then marks the plan ready. No partial state is ever visible.
func (r *planRepository) SaveBuildResult(ctx context.Context, plan *models.Plan, result models.PlanResult) error {
	weatherJSON, err := json.Marshal(plan.WeatherSnapshotJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal weather snapshot: %w", err)
	}
	metaJSON, err := json.Marshal(plan.OptimizationMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal optimization metadata: %w", err)
	}

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE plans
			SET status = $1, weather_snapshot_json = $2, generation_method = $3,
			    llm_attempts = $4, optimization_metadata = $5,
			    last_error_code = NULL, last_error_context = NULL, updated_at = now()
			WHERE id = $6`,
			models.PlanStatusReady, weatherJSON, plan.GenerationMethod, plan.LLMAttempts, metaJSON, plan.ID,
		); err != nil {
			return fmt.Errorf("failed to update plan row: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM legs WHERE plan_id = $1`, plan.ID); err != nil {
			return fmt.Errorf("failed to clear prior legs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM stops WHERE plan_id = $1`, plan.ID); err != nil {
			return fmt.Errorf("failed to clear prior stops: %w", err)
		}

		for _, stop := range result.ChosenStops {
			if err := insertStop(ctx, tx, plan.ID, stop); err != nil {
				return err
			}
		}
		for _, leg := range result.Legs {
			if err := insertLeg(ctx, tx, plan.ID, leg); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertStop(ctx context.Context, tx *sql.Tx, planID string, stop models.Stop) error {
	openingHoursJSON, err := json.Marshal(stop.OpeningHours)
	if err != nil {
		return fmt.Errorf("failed to marshal stop opening hours: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stops (
			plan_id, order_index, slot_id, slot_title, slot_role, why_now,
			place_id, name, lat, lng, category, start_time_utc, duration_min,
			open_status, open_confidence, open_reason, opening_hours_json,
			place_types, business_status, rating, popularity, photo_reference,
			hours_unknown, closed_warning
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24
		)`,
		planID, stop.OrderIndex, stop.SlotID, stop.SlotTitle, stop.SlotRole, stop.WhyNow,
		stop.PlaceID, stop.Name, stop.Lat, stop.Lng, stop.Category, stop.Start, stop.DurationMin,
		stop.OpenStatus, stop.OpenConfidence, stop.OpenReason, openingHoursJSON,
		pq.Array(stop.PlaceTypes), stop.BusinessStatus, stop.Rating, stop.Popularity, stop.PhotoReference,
		stop.HoursUnknown, stop.ClosedWarning,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stop %s: %w", stop.PlaceID, err)
	}
	return nil
}

func insertLeg(ctx context.Context, tx *sql.Tx, planID string, leg models.Leg) error {
	modesJSON, err := json.Marshal(leg.Modes)
	if err != nil {
		return fmt.Errorf("failed to marshal leg modes: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO legs (
			plan_id, from_stop, to_stop, modes_json,
			recommended_mode, recommended_distance_m, recommended_duration_sec, recommended_reason
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		planID, leg.FromStop, leg.ToStop, modesJSON,
		leg.RecommendedMode, leg.RecommendedDistanceM, leg.RecommendedDurationSec, leg.RecommendedReason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert leg %d->%d: %w", leg.FromStop, leg.ToStop, err)
	}
	return nil
}

// ListStops returns a plan's stops ordered by their dense order_index.
func (r *planRepository) ListStops(ctx context.Context, planID string) ([]models.Stop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_index, slot_id, slot_title, slot_role, why_now, place_id, name,
		       lat, lng, category, start_time_utc, duration_min, open_status,
		       open_confidence, open_reason, opening_hours_json, place_types,
		       business_status, rating, popularity, photo_reference,
		       hours_unknown, closed_warning
		FROM stops WHERE plan_id = $1 ORDER BY order_index ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stops for plan %s: %w", planID, err)
	}
	defer rows.Close()

	var stops []models.Stop
	for rows.Next() {
		var stop models.Stop
		var openingHoursJSON []byte
		var placeTypes pq.StringArray

		if err := rows.Scan(
			&stop.OrderIndex, &stop.SlotID, &stop.SlotTitle, &stop.SlotRole, &stop.WhyNow,
			&stop.PlaceID, &stop.Name, &stop.Lat, &stop.Lng, &stop.Category, &stop.Start, &stop.DurationMin,
			&stop.OpenStatus, &stop.OpenConfidence, &stop.OpenReason, &openingHoursJSON, &placeTypes,
			&stop.BusinessStatus, &stop.Rating, &stop.Popularity, &stop.PhotoReference,
			&stop.HoursUnknown, &stop.ClosedWarning,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stop row: %w", err)
		}

		if len(openingHoursJSON) > 0 {
			var oh models.OpeningHours
			if err := json.Unmarshal(openingHoursJSON, &oh); err != nil {
				return nil, fmt.Errorf("failed to unmarshal stop opening hours: %w", err)
			}
			stop.OpeningHours = &oh
		}
		stop.PlaceTypes = placeTypes

		stops = append(stops, stop)
	}
	return stops, rows.Err()
}

// ListLegs returns a plan's legs in from_stop order.
func (r *planRepository) ListLegs(ctx context.Context, planID string) ([]models.Leg, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT from_stop, to_stop, modes_json, recommended_mode,
		       recommended_distance_m, recommended_duration_sec, recommended_reason
		FROM legs WHERE plan_id = $1 ORDER BY from_stop ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list legs for plan %s: %w", planID, err)
	}
	defer rows.Close()

	var legs []models.Leg
	for rows.Next() {
		var leg models.Leg
		var modesJSON []byte
		if err := rows.Scan(
			&leg.FromStop, &leg.ToStop, &modesJSON, &leg.RecommendedMode,
			&leg.RecommendedDistanceM, &leg.RecommendedDurationSec, &leg.RecommendedReason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leg row: %w", err)
		}
		if len(modesJSON) > 0 {
			if err := json.Unmarshal(modesJSON, &leg.Modes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal leg modes: %w", err)
			}
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}
