package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/exotic-travel-booking/backend/internal/models"
	"github.com/exotic-travel-booking/backend/internal/services"
)

// PlanHandlers handles itinerary-plan HTTP requests.
type PlanHandlers struct {
	planService *services.PlanService
}

// NewPlanHandlers creates new plan handlers.
func NewPlanHandlers(planService *services.PlanService) *PlanHandlers {
	return &PlanHandlers{planService: planService}
}

// createPlanRequest is the HTTP request body for starting a new plan build.
type createPlanRequest struct {
	models.GenerateInputs
	StartTimeUTC time.Time `json:"start_time_utc"`
	Timezone     string    `json:"timezone"`
}

// planResponse is the HTTP response body combining a plan with its
// materialized stops and legs.
type planResponse struct {
	*models.Plan
	Stops []models.Stop `json:"stops"`
	Legs  []models.Leg  `json:"legs"`
}

// Create handles starting a new itinerary plan build.
func (h *PlanHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(int)

	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.StartTimeUTC.IsZero() {
		req.StartTimeUTC = time.Now().UTC()
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	plan, err := h.planService.CreateAndGenerate(r.Context(), req.GenerateInputs, req.StartTimeUTC, req.Timezone, userID)
	if err != nil {
		if strings.Contains(err.Error(), "required") {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create plan", http.StatusInternalServerError)
		return
	}

	h.writePlan(w, plan, http.StatusCreated)
}

// GetByID handles retrieving a plan with its stops and legs.
func (h *PlanHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := planIDFromPath(r, 0)
	if !ok {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	plan, stops, legs, err := h.planService.Get(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "no rows") {
			http.Error(w, "Plan not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(planResponse{Plan: plan, Stops: stops, Legs: legs})
}

// Regenerate handles re-running a plan's build from its stored inputs.
func (h *PlanHandlers) Regenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := planIDFromPath(r, 1)
	if !ok {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	plan, err := h.planService.Regenerate(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to regenerate plan", http.StatusInternalServerError)
		return
	}
	h.writePlan(w, plan, http.StatusOK)
}

type swapStopRequest struct {
	Reason string `json:"reason"`
}

// SwapStop handles requesting an alternative for one stop.
func (h *PlanHandlers) SwapStop(w http.ResponseWriter, r *http.Request) {
	planID, stopID, ok := planAndStopIDFromPath(r, "swap")
	if !ok {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	var req swapStopRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.planService.SwapStop(r.Context(), planID, stopID, req.Reason); err != nil {
		http.Error(w, "Failed to swap stop", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type delayReplanRequest struct {
	DeltaMin int `json:"delta_min"`
}

// DelayReplan handles shifting a stop's start time and cascading the delay.
func (h *PlanHandlers) DelayReplan(w http.ResponseWriter, r *http.Request) {
	planID, stopID, ok := planAndStopIDFromPath(r, "delay")
	if !ok {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	var req delayReplanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.planService.DelayReplan(r.Context(), planID, stopID, req.DeltaMin); err != nil {
		http.Error(w, "Failed to delay plan", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// UndoSwap handles reverting the most recent swap for a stop.
func (h *PlanHandlers) UndoSwap(w http.ResponseWriter, r *http.Request) {
	planID, stopID, ok := planAndStopIDFromPath(r, "undo-swap")
	if !ok {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	if err := h.planService.UndoSwap(r.Context(), planID, stopID); err != nil {
		http.Error(w, "Failed to undo swap", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *PlanHandlers) writePlan(w http.ResponseWriter, plan *models.Plan, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(plan)
}

// planIDFromPath extracts the plan id from /api/plans/{id}[/...], where
// suffixLen is the number of path segments expected after the id.
func planIDFromPath(r *http.Request, suffixLen int) (string, bool) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	idx := len(parts) - 1 - suffixLen
	if idx < 0 || idx >= len(parts) || parts[idx] == "" {
		return "", false
	}
	return parts[idx], true
}

// planAndStopIDFromPath extracts (planID, stopID) from
// /api/plans/{planID}/stops/{stopID}/{action}.
func planAndStopIDFromPath(r *http.Request, action string) (string, string, bool) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 5 {
		return "", "", false
	}
	stopID := parts[len(parts)-2]
	planID := parts[len(parts)-4]
	if planID == "" || stopID == "" {
		return "", "", false
	}
	_ = action
	return planID, stopID, true
}
