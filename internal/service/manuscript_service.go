package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcopy-server/internal/extract"
	"bookcopy-server/internal/model"
)

// ManuscriptRepository описывает хранилище рукописей, необходимое сервису.
type ManuscriptRepository interface {
	Create(ctx context.Context, m model.Manuscript) (model.Manuscript, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Manuscript, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ManuscriptSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActionLogRepository описывает журнал действий пользователей.
type ActionLogRepository interface {
	Append(ctx context.Context, entry model.ActionLogEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ActionLogEntry, error)
}

// TextAnalyzer описывает анализатор извлеченного текста.
type TextAnalyzer interface {
	Analyze(text string) model.TextStats
}

// ManuscriptService отвечает за загрузку рукописей, извлечение текста
// и подсчет статистики.
type ManuscriptService struct {
	repo      ManuscriptRepository
	actionLog ActionLogRepository
	analyzer  TextAnalyzer
	logger    *zap.Logger
}

// NewManuscriptService создает новый ManuscriptService.
func NewManuscriptService(repo ManuscriptRepository, actionLog ActionLogRepository, analyzer TextAnalyzer, logger *zap.Logger) *ManuscriptService {
	return &ManuscriptService{
		repo:      repo,
		actionLog: actionLog,
		analyzer:  analyzer,
		logger:    logger.Named("ManuscriptService"),
	}
}

// Upload извлекает текст из файла рукописи, считает статистику и сохраняет результат.
func (s *ManuscriptService) Upload(ctx context.Context, userID uuid.UUID, filename string, data []byte) (model.Manuscript, error) {
	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("filename", filename),
		zap.Int("sizeBytes", len(data)),
	}
	s.logger.Info("Processing manuscript upload", logFields...)

	format, err := extract.FormatForFilename(filename)
	if err != nil {
		s.logger.Warn("Upload rejected: unsupported format", logFields...)
		return model.Manuscript{}, err
	}

	text, err := extract.Text(format, data)
	if err != nil {
		s.logger.Error("Failed to extract text from manuscript", append(logFields, zap.Error(err))...)
		return model.Manuscript{}, fmt.Errorf("failed to extract text: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("Upload rejected: no extractable text", logFields...)
		return model.Manuscript{}, model.ErrEmptyManuscript
	}

	stats := s.analyzer.Analyze(text)

	m, err := s.repo.Create(ctx, model.Manuscript{
		UserID:        userID,
		Filename:      filename,
		Format:        format,
		SizeBytes:     int64(len(data)),
		ExtractedText: text,
		Stats:         stats,
	})
	if err != nil {
		s.logger.Error("Failed to save manuscript", append(logFields, zap.Error(err))...)
		return model.Manuscript{}, fmt.Errorf("failed to save manuscript: %w", err)
	}

	manuscriptsUploadedTotal.WithLabelValues(string(format)).Inc()
	s.recordAction(ctx, userID, model.ActionUploadManuscript, &m.ID, map[string]any{
		"filename": filename,
		"format":   format,
	})

	s.logger.Info("Manuscript uploaded successfully",
		zap.String("manuscriptID", m.ID.String()),
		zap.Int("wordCount", stats.WordCount),
		zap.Int("tokenCount", stats.TokenCount))
	return m, nil
}

// Get возвращает рукопись пользователя. Чужие рукописи неотличимы от несуществующих.
func (s *ManuscriptService) Get(ctx context.Context, userID, manuscriptID uuid.UUID) (model.Manuscript, error) {
	m, err := s.repo.GetByID(ctx, manuscriptID)
	if err != nil {
		return model.Manuscript{}, err
	}
	if m.UserID != userID {
		s.logger.Warn("Access to foreign manuscript denied",
			zap.String("userID", userID.String()),
			zap.String("manuscriptID", manuscriptID.String()))
		return model.Manuscript{}, model.ErrManuscriptNotFound
	}
	return m, nil
}

// List возвращает страницу рукописей пользователя.
func (s *ManuscriptService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ManuscriptSummary, error) {
	items, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list manuscripts", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to list manuscripts: %w", err)
	}
	return items, nil
}

// Delete удаляет рукопись пользователя вместе со связанными генерациями.
func (s *ManuscriptService) Delete(ctx context.Context, userID, manuscriptID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, manuscriptID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, manuscriptID); err != nil {
		s.logger.Error("Failed to delete manuscript", zap.Error(err), zap.String("manuscriptID", manuscriptID.String()))
		return err
	}

	s.recordAction(ctx, userID, model.ActionDeleteManuscript, &manuscriptID, nil)
	s.logger.Info("Manuscript deleted", zap.String("manuscriptID", manuscriptID.String()), zap.String("userID", userID.String()))
	return nil
}

// Actions возвращает страницу журнала действий пользователя.
func (s *ManuscriptService) Actions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ActionLogEntry, error) {
	return s.actionLog.ListByUser(ctx, userID, limit, offset)
}

// recordAction пишет запись в журнал действий. Сбой записи не роняет операцию.
func (s *ManuscriptService) recordAction(ctx context.Context, userID uuid.UUID, action string, entityID *uuid.UUID, detail map[string]any) {
	var raw json.RawMessage
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			raw = b
		}
	}
	if err := s.actionLog.Append(ctx, model.ActionLogEntry{
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
		Detail:   raw,
	}); err != nil {
		s.logger.Error("Non-critical: failed to append action log entry",
			zap.Error(err), zap.String("action", action), zap.String("userID", userID.String()))
	}
}
