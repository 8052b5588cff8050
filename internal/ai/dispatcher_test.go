package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCompletionClient is a mock type for the CompletionClient type
type mockCompletionClient struct {
	mock.Mock
}

func (_m *mockCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, error) {
	ret := _m.Called(ctx, systemPrompt, userPrompt, params)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}
	return r0, ret.Error(1)
}

func newTestDispatcher(client CompletionClient) *Dispatcher {
	return NewDispatcher(client, NewParamsTable(nil), zap.NewNop())
}

func TestDispatcher_Generate_AllTypes(t *testing.T) {
	const generated = "Сгенерированный маркетинговый текст."
	sourceText := "Текст рукописи о приключениях сыщика."

	for _, gt := range AllGenerationTypes {
		t.Run(gt.String(), func(t *testing.T) {
			client := &mockCompletionClient{}
			client.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(generated, nil).Once()

			d := newTestDispatcher(client)
			text, err := d.Generate(context.Background(), gt, sourceText)
			require.NoError(t, err)
			// Текст от клиента возвращается без изменений
			assert.Equal(t, generated, text)

			client.AssertExpectations(t)

			// Проверяем, что в клиент ушли промпт с текстом рукописи и параметры типа
			call := client.Calls[0]
			userPrompt := call.Arguments.String(2)
			assert.True(t, strings.Contains(userPrompt, sourceText))

			wantParams, err := NewParamsTable(nil).Params(gt)
			require.NoError(t, err)
			assert.Equal(t, wantParams, call.Arguments.Get(3).(GenerationParams))
		})
	}
}

func TestDispatcher_Generate_InvalidType(t *testing.T) {
	client := &mockCompletionClient{}
	d := newTestDispatcher(client)

	_, err := d.Generate(context.Background(), GenerationType("poster"), "текст рукописи")
	assert.ErrorIs(t, err, ErrInvalidGenerationType)
	// До клиента запрос не доходит
	client.AssertNotCalled(t, "Complete")
}

func TestDispatcher_Generate_EmptyInput(t *testing.T) {
	client := &mockCompletionClient{}
	d := newTestDispatcher(client)

	_, err := d.Generate(context.Background(), TypeBlurb, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	client.AssertNotCalled(t, "Complete")
}

func TestDispatcher_Generate_ClientFailureIsOpaque(t *testing.T) {
	upstreamDetail := "status 503: upstream exploded with secret details"
	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New(upstreamDetail)).Once()

	d := newTestDispatcher(client)
	_, err := d.Generate(context.Background(), TypeDescription, "текст рукописи")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	// Детали провайдера не просачиваются в возвращаемую ошибку
	assert.NotContains(t, err.Error(), "secret details")
	assert.NotContains(t, err.Error(), "503")
}

func TestDispatcher_Generate_CategoriesEndToEnd(t *testing.T) {
	const categoriesJSON = `{"main":"Fiction","sub":["Mystery","Thriller"]}`
	const sourceText = "A story about a detective."

	client := &mockCompletionClient{}
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(categoriesJSON, nil).Once()

	d := newTestDispatcher(client)
	text, err := d.Generate(context.Background(), TypeCategories, sourceText)
	require.NoError(t, err)
	// Ответ клиента возвращается ровно в том виде, в каком пришел
	assert.Equal(t, categoriesJSON, text)

	// В промпт попали и инструкция про JSON с main/sub, и дословный текст рукописи
	userPrompt := client.Calls[0].Arguments.String(2)
	assert.Contains(t, userPrompt, "JSON")
	assert.Contains(t, userPrompt, `"main"`)
	assert.Contains(t, userPrompt, `"sub"`)
	assert.Contains(t, userPrompt, sourceText)
}

func TestDispatcher_WithRealClient_EmptyContent(t *testing.T) {
	// Успешный статус с пустым контентом доходит до вызывающей стороны
	// как общий ErrGenerationFailed, без деталей разбора.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("")))
	})

	d := newTestDispatcher(client)
	_, err := d.Generate(context.Background(), TypeForeword, "Текст рукописи.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestIsCallerError(t *testing.T) {
	assert.True(t, IsCallerError(ErrInvalidGenerationType))
	assert.True(t, IsCallerError(ErrEmptyInput))
	assert.False(t, IsCallerError(ErrGenerationFailed))
	assert.False(t, IsCallerError(errors.New("random")))
}
