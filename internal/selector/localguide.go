package selector

import (
	"context"
	"encoding/json"
	"fmt"

	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/models"
)

// LocalGuideBuilder renders a CityDNA into a weather- and slot-aware guide,
// optionally enriched by a language model.
type LocalGuideBuilder struct {
	provider llmproviders.LLMProvider
	model    string
}

// NewLocalGuideBuilder builds a guide renderer; provider may be nil.
func NewLocalGuideBuilder(provider llmproviders.LLMProvider, model string) *LocalGuideBuilder {
	return &LocalGuideBuilder{provider: provider, model: model}
}

// Build produces a LocalGuide, degrading to the deterministic synthesis on
// any LLM failure or absence.
func (b *LocalGuideBuilder) Build(ctx context.Context, dna models.CityDNA, intent string, weather *models.WeatherSnapshot, optionsBySlot map[string][]models.RankedOption, constraints []string) models.LocalGuide {
	if b.provider == nil {
		return deterministicLocalGuide(dna, weather)
	}

	guide, err := b.buildViaLLM(ctx, dna, intent, weather, optionsBySlot, constraints)
	if err != nil {
		return deterministicLocalGuide(dna, weather)
	}
	return guide
}

// deterministicLocalGuide synthesizes climate_advice from feels_like and
// condition, and carries typicals/etiquette straight from the CityDNA.
func deterministicLocalGuide(dna models.CityDNA, weather *models.WeatherSnapshot) models.LocalGuide {
	var advice []string
	if weather != nil {
		if weather.FeelsLike <= 5 {
			advice = append(advice, "mucho frío, busca lugares indoor")
		}
		if weather.FeelsLike >= 28 {
			advice = append(advice, "hace calor, hidrátate")
		}
		if weather.IsRaining {
			advice = append(advice, "lleva paraguas")
		}
		if weather.IsSnowing {
			advice = append(advice, "abrígate")
		}
	}

	return models.LocalGuide{
		Headline:      fmt.Sprintf("Exploring %s", dna.City),
		Summary:       "A self-guided plan built from local favorites.",
		ClimateAdvice: advice,
		LocalTypicals: map[string][]models.TypicalItem{
			"food":   firstN(dna.FoodTypicals, 5),
			"drinks": firstN(dna.DrinkTypicals, 5),
		},
		PracticalNotes: dna.Etiquette,
	}
}

func firstN(items []models.TypicalItem, n int) []models.TypicalItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func (b *LocalGuideBuilder) buildViaLLM(ctx context.Context, dna models.CityDNA, intent string, weather *models.WeatherSnapshot, optionsBySlot map[string][]models.RankedOption, constraints []string) (models.LocalGuide, error) {
	payload := compactGuidePayload(dna, intent, weather, optionsBySlot, constraints)
	body, err := json.Marshal(payload)
	if err != nil {
		return models.LocalGuide{}, fmt.Errorf("local guide: marshal payload: %w", err)
	}

	req := &llmproviders.GenerateRequest{
		Model: b.model,
		SystemPrompt: "You write a short local guide as strict JSON: " +
			`{"headline":"","summary":"","climate_advice":[],"local_typicals":{"food":[],"drinks":[]},` +
			`"per_slot_order_tips":[{"slot_id":"","tips":[]}],"practical_notes":[]}. ` +
			"Never claim a specific listed venue serves a specific dish unless given that fact; never invent venues.",
		Messages: []llmproviders.Message{
			{Role: "user", Content: string(body)},
		},
		Temperature: 0.4,
		MaxTokens:   900,
	}

	resp, err := b.provider.GenerateResponse(ctx, req)
	if err != nil {
		return models.LocalGuide{}, fmt.Errorf("local guide: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.LocalGuide{}, fmt.Errorf("local guide: empty response")
	}

	var guide models.LocalGuide
	if err := json.Unmarshal([]byte(extractJSON(resp.Choices[0].Message.Content)), &guide); err != nil {
		return models.LocalGuide{}, fmt.Errorf("local guide: unparseable response: %w", err)
	}
	return guide, nil
}

type guidePayloadSlot struct {
	SlotID     string   `json:"slot_id"`
	Candidates []string `json:"candidates"`
}

type guidePayload struct {
	City        string             `json:"city"`
	Intent      string             `json:"intent"`
	Constraints []string           `json:"constraints"`
	CityDNA     models.CityDNA     `json:"city_dna"`
	Slots       []guidePayloadSlot `json:"slots"`
}

func compactGuidePayload(dna models.CityDNA, intent string, weather *models.WeatherSnapshot, optionsBySlot map[string][]models.RankedOption, constraints []string) guidePayload {
	slots := make([]guidePayloadSlot, 0, len(optionsBySlot))
	for slotID, options := range optionsBySlot {
		top := options
		if len(top) > 8 {
			top = top[:8]
		}
		names := make([]string, 0, len(top))
		for _, opt := range top {
			names = append(names, opt.Place.Name)
		}
		slots = append(slots, guidePayloadSlot{SlotID: slotID, Candidates: names})
	}

	return guidePayload{
		City: dna.City, Intent: intent, Constraints: constraints,
		CityDNA: dna, Slots: slots,
	}
}
