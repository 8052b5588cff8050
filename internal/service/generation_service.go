package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcopy-server/internal/ai"
	"bookcopy-server/internal/model"
)

// GenerationRepository описывает хранилище результатов генерации.
type GenerationRepository interface {
	Create(ctx context.Context, g model.Generation) (model.Generation, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Generation, error)
	ListByManuscript(ctx context.Context, manuscriptID uuid.UUID, limit, offset int) ([]model.Generation, error)
}

// TextGenerator описывает генератор маркетинговых текстов.
type TextGenerator interface {
	Generate(ctx context.Context, generationType ai.GenerationType, extractedText string) (string, error)
}

// TextTruncator усекает текст до лимита токенов перед отправкой провайдеру.
type TextTruncator interface {
	Truncate(text string, maxTokens int) string
}

// GenerationService координирует генерацию маркетинговых текстов по рукописям:
// проверяет права, усекает текст до лимита, вызывает генератор и сохраняет результат.
type GenerationService struct {
	generationRepo GenerationRepository
	manuscriptRepo ManuscriptRepository
	actionLog      ActionLogRepository
	generator      TextGenerator
	truncator      TextTruncator
	maxInputTokens int
	logger         *zap.Logger
}

// NewGenerationService создает новый GenerationService.
func NewGenerationService(
	generationRepo GenerationRepository,
	manuscriptRepo ManuscriptRepository,
	actionLog ActionLogRepository,
	generator TextGenerator,
	truncator TextTruncator,
	maxInputTokens int,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		generationRepo: generationRepo,
		manuscriptRepo: manuscriptRepo,
		actionLog:      actionLog,
		generator:      generator,
		truncator:      truncator,
		maxInputTokens: maxInputTokens,
		logger:         logger.Named("GenerationService"),
	}
}

// Generate запускает генерацию текста указанного типа по рукописи пользователя
// и сохраняет результат, успешный или нет. Возвращает сохраненную запись.
func (s *GenerationService) Generate(ctx context.Context, userID, manuscriptID uuid.UUID, generationType string) (model.Generation, error) {
	gt, err := ai.ParseGenerationType(generationType)
	if err != nil {
		return model.Generation{}, err
	}

	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("manuscriptID", manuscriptID.String()),
		zap.String("type", gt.String()),
	}
	s.logger.Info("Starting generation", logFields...)

	m, err := s.manuscriptRepo.GetByID(ctx, manuscriptID)
	if err != nil {
		return model.Generation{}, err
	}
	if m.UserID != userID {
		s.logger.Warn("Generation request for foreign manuscript denied", logFields...)
		return model.Generation{}, model.ErrManuscriptNotFound
	}

	text := s.truncator.Truncate(m.ExtractedText, s.maxInputTokens)

	start := time.Now()
	resultText, genErr := s.generator.Generate(ctx, gt, text)
	duration := time.Since(start)

	if genErr != nil && ai.IsCallerError(genErr) {
		// Ошибки входных данных не сохраняем как результат генерации.
		return model.Generation{}, genErr
	}

	g := model.Generation{
		ManuscriptID: manuscriptID,
		UserID:       userID,
		Type:         gt.String(),
		DurationMs:   duration.Milliseconds(),
	}
	if genErr != nil {
		g.Status = model.GenerationStatusFailed
		g.Error = genErr.Error()
	} else {
		g.Status = model.GenerationStatusCompleted
		g.ResultText = resultText
	}

	saved, err := s.generationRepo.Create(ctx, g)
	if err != nil {
		s.logger.Error("Failed to save generation result", append(logFields, zap.Error(err))...)
		return model.Generation{}, fmt.Errorf("failed to save generation result: %w", err)
	}

	generationsTotal.WithLabelValues(gt.String(), string(saved.Status)).Inc()
	generationDuration.WithLabelValues(gt.String()).Observe(duration.Seconds())
	s.recordAction(ctx, userID, saved)

	if genErr != nil {
		s.logger.Warn("Generation failed", append(logFields,
			zap.String("generationID", saved.ID.String()),
			zap.Int64("durationMs", saved.DurationMs))...)
		return saved, genErr
	}

	s.logger.Info("Generation completed", append(logFields,
		zap.String("generationID", saved.ID.String()),
		zap.Int64("durationMs", saved.DurationMs))...)
	return saved, nil
}

// Get возвращает результат генерации пользователя.
func (s *GenerationService) Get(ctx context.Context, userID, generationID uuid.UUID) (model.Generation, error) {
	g, err := s.generationRepo.GetByID(ctx, generationID)
	if err != nil {
		return model.Generation{}, err
	}
	if g.UserID != userID {
		return model.Generation{}, model.ErrGenerationNotFound
	}
	return g, nil
}

// ListByManuscript возвращает страницу генераций по рукописи пользователя.
func (s *GenerationService) ListByManuscript(ctx context.Context, userID, manuscriptID uuid.UUID, limit, offset int) ([]model.Generation, error) {
	m, err := s.manuscriptRepo.GetByID(ctx, manuscriptID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, model.ErrManuscriptNotFound
	}
	return s.generationRepo.ListByManuscript(ctx, manuscriptID, limit, offset)
}

func (s *GenerationService) recordAction(ctx context.Context, userID uuid.UUID, g model.Generation) {
	detail := fmt.Sprintf(`{"type":%q,"status":%q}`, g.Type, g.Status)
	if err := s.actionLog.Append(ctx, model.ActionLogEntry{
		UserID:   userID,
		Action:   model.ActionGenerate,
		EntityID: &g.ID,
		Detail:   []byte(detail),
	}); err != nil {
		s.logger.Error("Non-critical: failed to append action log entry",
			zap.Error(err), zap.String("userID", userID.String()))
	}
}
