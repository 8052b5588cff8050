package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_AllTypes(t *testing.T) {
	sourceText := "Жил-был рыцарь. Он отправился в путь."

	for _, gt := range AllGenerationTypes {
		t.Run(gt.String(), func(t *testing.T) {
			prompt, err := BuildPrompt(gt, sourceText)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
			// Текст рукописи попадает в промпт дословно
			assert.True(t, strings.HasSuffix(prompt, sourceText))
		})
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	sourceText := "Текст рукописи для проверки детерминизма."

	first, err := BuildPrompt(TypeBlurb, sourceText)
	require.NoError(t, err)
	second, err := BuildPrompt(TypeBlurb, sourceText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildPrompt_CategoriesRequestsJSON(t *testing.T) {
	prompt, err := BuildPrompt(TypeCategories, "Детективный роман о сыщике.")
	require.NoError(t, err)

	// Промпт категорий должен явно требовать JSON с полями main и sub
	assert.Contains(t, prompt, "JSON")
	assert.Contains(t, prompt, `"main"`)
	assert.Contains(t, prompt, `"sub"`)
}

func TestBuildPrompt_UnknownType(t *testing.T) {
	_, err := BuildPrompt(GenerationType("poster"), "текст")
	assert.ErrorIs(t, err, ErrInvalidGenerationType)
}

func TestParseGenerationType(t *testing.T) {
	gt, err := ParseGenerationType("keywords")
	require.NoError(t, err)
	assert.Equal(t, TypeKeywords, gt)

	_, err = ParseGenerationType("summary")
	assert.ErrorIs(t, err, ErrInvalidGenerationType)

	_, err = ParseGenerationType("")
	assert.ErrorIs(t, err, ErrInvalidGenerationType)
}
