package selector

import (
	"encoding/json"
	"fmt"

	"github.com/exotic-travel-booking/backend/internal/models"
)

type cityDNAWire struct {
	FoodTypicals      []models.TypicalItem  `json:"food_typicals"`
	DrinkTypicals     []models.TypicalItem  `json:"drink_typicals"`
	LocalKeywords     []string              `json:"local_keywords"`
	NegativeKeywords  []string              `json:"negative_keywords"`
	Etiquette         []string              `json:"etiquette"`
	NeighborhoodHints []models.Neighborhood `json:"neighborhood_hints"`
}

func parseCityDNA(content string) (models.CityDNA, error) {
	var wire cityDNAWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return models.CityDNA{}, fmt.Errorf("city dna: unparseable response: %w", err)
	}
	return models.CityDNA{
		FoodTypicals:      wire.FoodTypicals,
		DrinkTypicals:     wire.DrinkTypicals,
		LocalKeywords:     wire.LocalKeywords,
		NegativeKeywords:  wire.NegativeKeywords,
		Etiquette:         wire.Etiquette,
		NeighborhoodHints: wire.NeighborhoodHints,
	}, nil
}
