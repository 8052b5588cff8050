package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookcopy-server/internal/model"
	"bookcopy-server/internal/service"
)

// MockManuscriptRepository is a mock type for the ManuscriptRepository type
type MockManuscriptRepository struct {
	mock.Mock
}

func (_m *MockManuscriptRepository) Create(ctx context.Context, m model.Manuscript) (model.Manuscript, error) {
	ret := _m.Called(ctx, m)
	return ret.Get(0).(model.Manuscript), ret.Error(1)
}

func (_m *MockManuscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Manuscript, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Manuscript), ret.Error(1)
}

func (_m *MockManuscriptRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ManuscriptSummary, error) {
	ret := _m.Called(ctx, userID, limit, offset)

	var r0 []model.ManuscriptSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.ManuscriptSummary)
	}
	return r0, ret.Error(1)
}

func (_m *MockManuscriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

var _ service.ManuscriptRepository = (*MockManuscriptRepository)(nil)

// MockActionLogRepository is a mock type for the ActionLogRepository type
type MockActionLogRepository struct {
	mock.Mock
}

func (_m *MockActionLogRepository) Append(ctx context.Context, entry model.ActionLogEntry) error {
	ret := _m.Called(ctx, entry)
	return ret.Error(0)
}

func (_m *MockActionLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ActionLogEntry, error) {
	ret := _m.Called(ctx, userID, limit, offset)

	var r0 []model.ActionLogEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.ActionLogEntry)
	}
	return r0, ret.Error(1)
}

var _ service.ActionLogRepository = (*MockActionLogRepository)(nil)

// MockTextAnalyzer is a mock type for the TextAnalyzer type
type MockTextAnalyzer struct {
	mock.Mock
}

func (_m *MockTextAnalyzer) Analyze(text string) model.TextStats {
	ret := _m.Called(text)
	return ret.Get(0).(model.TextStats)
}

var _ service.TextAnalyzer = (*MockTextAnalyzer)(nil)
