package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsTable_Defaults(t *testing.T) {
	table := NewParamsTable(nil)

	expected := map[GenerationType]GenerationParams{
		TypeBlurb:       {Temperature: 0.7, MaxTokens: 500},
		TypeDescription: {Temperature: 0.7, MaxTokens: 500},
		TypeKeywords:    {Temperature: 0.5, MaxTokens: 150},
		TypeCategories:  {Temperature: 0.6, MaxTokens: 200},
		TypeForeword:    {Temperature: 0.7, MaxTokens: 400},
		TypeAnalysis:    {Temperature: 0.8, MaxTokens: 600},
	}

	for gt, want := range expected {
		got, err := table.Params(gt)
		require.NoError(t, err, gt)
		assert.Equal(t, want, got, gt)
	}
}

func TestParamsTable_Overrides(t *testing.T) {
	temp := 1.2
	maxTokens := 800

	table := NewParamsTable(map[GenerationType]ParamsOverride{
		TypeBlurb: {Temperature: &temp, MaxTokens: &maxTokens},
	})

	got, err := table.Params(TypeBlurb)
	require.NoError(t, err)
	assert.Equal(t, float32(1.2), got.Temperature)
	assert.Equal(t, 800, got.MaxTokens)

	// Остальные типы не затронуты
	other, err := table.Params(TypeKeywords)
	require.NoError(t, err)
	assert.Equal(t, GenerationParams{Temperature: 0.5, MaxTokens: 150}, other)
}

func TestParamsTable_InvalidOverridesIgnored(t *testing.T) {
	badTemp := 3.5
	negTokens := -10

	table := NewParamsTable(map[GenerationType]ParamsOverride{
		TypeAnalysis: {Temperature: &badTemp, MaxTokens: &negTokens},
	})

	got, err := table.Params(TypeAnalysis)
	require.NoError(t, err)
	// Невалидные значения игнорируются, остаются значения по умолчанию
	assert.Equal(t, GenerationParams{Temperature: 0.8, MaxTokens: 600}, got)
}

func TestParamsTable_UnknownType(t *testing.T) {
	table := NewParamsTable(nil)
	_, err := table.Params(GenerationType("poster"))
	assert.ErrorIs(t, err, ErrInvalidGenerationType)
}
