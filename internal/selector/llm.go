package selector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/models"
)

// candidatesPerSlot caps how many of a slot's options are sent to the model,
// keeping prompts small and bounding cost.
const candidatesPerSlot = 5

// LLM fills slots with a language-model-backed selection, falling back to
// Deterministic per-slot whenever the model errors or returns something
// that doesn't validate against the actual candidate set.
type LLM struct {
	provider llmproviders.LLMProvider
	model    string
	fallback Deterministic
}

// NewLLM builds an LLM-backed selector over an already-constructed provider.
func NewLLM(provider llmproviders.LLMProvider, model string) *LLM {
	return &LLM{provider: provider, model: model}
}

type slotPick struct {
	SlotID          string `json:"slot_id"`
	SelectedPlaceID string `json:"selected_place_id"`
	WhyNow          string `json:"why_now"`
}

type slotsFill struct {
	Picks []slotPick `json:"picks"`
}

// Fill asks the model to choose one place per slot; any failure (transport
// error, malformed JSON, or a selection that names a place_id the slot
// didn't offer) degrades that slot to the deterministic top pick.
func (l *LLM) Fill(ctx context.Context, slots []models.RankedSlot, weather *models.WeatherSnapshot, daypart string) []models.FilledSlot {
	if l.provider == nil {
		return Deterministic{}.Fill(slots, weather, daypart)
	}

	picks, err := l.requestPicks(ctx, slots)
	if err != nil {
		return Deterministic{}.Fill(slots, weather, daypart)
	}

	picksBySlot := make(map[string]slotPick, len(picks))
	for _, p := range picks {
		picksBySlot[p.SlotID] = p
	}

	out := make([]models.FilledSlot, len(slots))
	for i, slot := range slots {
		pick, ok := picksBySlot[slot.SlotID]
		if !ok || !slotOffers(slot, pick.SelectedPlaceID) {
			out[i] = fillFromTopOption(slot, weather, daypart)
			continue
		}
		out[i] = models.FilledSlot{
			RankedSlot:       slot,
			SelectedPlaceIDs: []string{pick.SelectedPlaceID},
			WhyNow:           truncate(pick.WhyNow, whyNowMaxLen),
		}
	}
	return out
}

func slotOffers(slot models.RankedSlot, placeID string) bool {
	if placeID == "" {
		return false
	}
	for _, opt := range slot.Options {
		if opt.Place.PlaceID == placeID {
			return true
		}
	}
	return false
}

func (l *LLM) requestPicks(ctx context.Context, slots []models.RankedSlot) ([]slotPick, error) {
	req := &llmproviders.GenerateRequest{
		Model:        l.model,
		SystemPrompt: systemPrompt(),
		Messages: []llmproviders.Message{
			{Role: "user", Content: buildUserPrompt(slots)},
		},
		Temperature: 0.2,
		MaxTokens:   1200,
	}

	resp, err := l.provider.GenerateResponse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm selection: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm selection: empty response")
	}

	var fill slotsFill
	content := extractJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &fill); err != nil {
		return nil, fmt.Errorf("llm selection: unparseable response: %w", err)
	}
	return fill.Picks, nil
}

func systemPrompt() string {
	return "You choose one venue per time slot from the candidates given. " +
		"Never invent a place_id that was not listed. Respond with JSON only: " +
		`{"picks":[{"slot_id":"...","selected_place_id":"...","why_now":"<=50 chars"}]}`
}

func buildUserPrompt(slots []models.RankedSlot) string {
	var b strings.Builder
	b.WriteString("Slots and candidates:\n")
	for _, slot := range slots {
		fmt.Fprintf(&b, "slot_id=%s title=%q categories=%v\n", slot.SlotID, slot.Title, slot.Categories)
		top := slot.Options
		if len(top) > candidatesPerSlot {
			top = top[:candidatesPerSlot]
		}
		for _, opt := range top {
			fmt.Fprintf(&b, "  place_id=%s name=%q category=%s rating=%v distance_m=%.0f\n",
				opt.Place.PlaceID, opt.Place.Name, opt.Place.Category, opt.Place.Rating, opt.DistanceM)
		}
	}
	return b.String()
}

// extractJSON strips a ```json fenced block if the model wrapped its answer,
// otherwise returns the content unchanged.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
