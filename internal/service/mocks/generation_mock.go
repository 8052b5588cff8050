package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookcopy-server/internal/ai"
	"bookcopy-server/internal/model"
	"bookcopy-server/internal/service"
)

// MockGenerationRepository is a mock type for the GenerationRepository type
type MockGenerationRepository struct {
	mock.Mock
}

func (_m *MockGenerationRepository) Create(ctx context.Context, g model.Generation) (model.Generation, error) {
	ret := _m.Called(ctx, g)
	return ret.Get(0).(model.Generation), ret.Error(1)
}

func (_m *MockGenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Generation, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Generation), ret.Error(1)
}

func (_m *MockGenerationRepository) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID, limit, offset int) ([]model.Generation, error) {
	ret := _m.Called(ctx, manuscriptID, limit, offset)

	var r0 []model.Generation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Generation)
	}
	return r0, ret.Error(1)
}

var _ service.GenerationRepository = (*MockGenerationRepository)(nil)

// MockTextGenerator is a mock type for the TextGenerator type
type MockTextGenerator struct {
	mock.Mock
}

func (_m *MockTextGenerator) Generate(ctx context.Context, generationType ai.GenerationType, extractedText string) (string, error) {
	ret := _m.Called(ctx, generationType, extractedText)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}
	return r0, ret.Error(1)
}

var _ service.TextGenerator = (*MockTextGenerator)(nil)

// MockTextTruncator is a mock type for the TextTruncator type
type MockTextTruncator struct {
	mock.Mock
}

func (_m *MockTextTruncator) Truncate(text string, maxTokens int) string {
	ret := _m.Called(text, maxTokens)
	return ret.Get(0).(string)
}

var _ service.TextTruncator = (*MockTextTruncator)(nil)
