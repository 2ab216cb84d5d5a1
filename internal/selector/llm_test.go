package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmproviders "github.com/exotic-travel-booking/backend/internal/llm/providers"
	"github.com/exotic-travel-booking/backend/internal/models"
)

type fakeProvider struct {
	response *llmproviders.GenerateResponse
	err      error
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, req *llmproviders.GenerateRequest) (*llmproviders.GenerateResponse, error) {
	return f.response, f.err
}
func (f *fakeProvider) StreamResponse(ctx context.Context, req *llmproviders.GenerateRequest) (<-chan *llmproviders.StreamChunk, error) {
	return nil, nil
}
func (f *fakeProvider) GetModels(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeProvider) GetName() string                                 { return "fake" }
func (f *fakeProvider) Close() error                                    { return nil }

func ratedSlot() models.RankedSlot {
	return models.RankedSlot{
		Slot: models.Slot{SlotID: "drinks"},
		Options: []models.RankedOption{
			{Place: models.Place{PlaceID: "p1", Name: "Bar One"}, Score: 50},
			{Place: models.Place{PlaceID: "p2", Name: "Bar Two"}, Score: 10},
		},
	}
}

func TestLLM_ValidSelectionIsUsed(t *testing.T) {
	provider := &fakeProvider{response: &llmproviders.GenerateResponse{
		Choices: []llmproviders.Choice{{Message: llmproviders.Message{
			Content: `{"picks":[{"slot_id":"drinks","selected_place_id":"p2","why_now":"Great vibe"}]}`,
		}}},
	}}
	sel := NewLLM(provider, "test-model")

	filled := sel.Fill(context.Background(), []models.RankedSlot{ratedSlot()}, nil, "evening")

	require.Len(t, filled, 1)
	assert.Equal(t, []string{"p2"}, filled[0].SelectedPlaceIDs)
	assert.Equal(t, "Great vibe", filled[0].WhyNow)
}

func TestLLM_InvalidPlaceIDFallsBackToDeterministic(t *testing.T) {
	provider := &fakeProvider{response: &llmproviders.GenerateResponse{
		Choices: []llmproviders.Choice{{Message: llmproviders.Message{
			Content: `{"picks":[{"slot_id":"drinks","selected_place_id":"made-up","why_now":"nope"}]}`,
		}}},
	}}
	sel := NewLLM(provider, "test-model")

	filled := sel.Fill(context.Background(), []models.RankedSlot{ratedSlot()}, nil, "evening")

	assert.Equal(t, []string{"p1"}, filled[0].SelectedPlaceIDs)
}

func TestLLM_ProviderErrorFallsBackToDeterministic(t *testing.T) {
	provider := &fakeProvider{err: assert.AnError}
	sel := NewLLM(provider, "test-model")

	filled := sel.Fill(context.Background(), []models.RankedSlot{ratedSlot()}, nil, "evening")

	assert.Equal(t, []string{"p1"}, filled[0].SelectedPlaceIDs)
}

func TestLLM_MalformedJSONFallsBackToDeterministic(t *testing.T) {
	provider := &fakeProvider{response: &llmproviders.GenerateResponse{
		Choices: []llmproviders.Choice{{Message: llmproviders.Message{Content: "not json"}}},
	}}
	sel := NewLLM(provider, "test-model")

	filled := sel.Fill(context.Background(), []models.RankedSlot{ratedSlot()}, nil, "evening")

	assert.Equal(t, []string{"p1"}, filled[0].SelectedPlaceIDs)
}
