package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// systemPrompt задает роль ассистента для всех типов генерации.
const systemPrompt = "Ты опытный книжный маркетолог и литературный редактор. " +
	"Ты помогаешь авторам и издательствам готовить маркетинговые материалы по рукописям. " +
	"Отвечай только запрошенным текстом, без вступлений и пояснений."

// CompletionClient - один запрос к completion API.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, error)
}

// Dispatcher - единственная публичная точка входа генерации: подбирает промпт и
// параметры под тип запроса, выполняет вызов и нормализует ошибки.
// Состояния не хранит, безопасен для конкурентного использования.
type Dispatcher struct {
	client CompletionClient
	params *ParamsTable
	logger *zap.Logger
}

// NewDispatcher создает диспетчер генерации. Таблица параметров передается
// явно, чтобы конфигурация была видимой зависимостью, а не глобальным состоянием.
func NewDispatcher(client CompletionClient, params *ParamsTable, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		params: params,
		logger: logger.Named("AIDispatcher"),
	}
}

// Generate генерирует маркетинговый текст указанного типа по тексту рукописи.
//
// Ошибки вызывающей стороны (ErrInvalidGenerationType, ErrEmptyInput) возвращаются
// как есть. Любой сбой completion клиента логируется с полными деталями и
// возвращается как общий ErrGenerationFailed - формулировки и статусы провайдера
// до вызывающей стороны не доходят.
func (d *Dispatcher) Generate(ctx context.Context, generationType GenerationType, extractedText string) (string, error) {
	gt, err := ParseGenerationType(string(generationType))
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(extractedText) == "" {
		return "", ErrEmptyInput
	}

	prompt, err := BuildPrompt(gt, extractedText)
	if err != nil {
		return "", err
	}

	params, err := d.params.Params(gt)
	if err != nil {
		return "", err
	}

	text, err := d.client.Complete(ctx, systemPrompt, prompt, params)
	if err != nil {
		// Полные детали сбоя (статус, причина разбора) остаются в логах.
		d.logger.Error("Completion request failed",
			zap.String("type", gt.String()),
			zap.Float32("temperature", params.Temperature),
			zap.Int("maxTokens", params.MaxTokens),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, gt)
	}

	return text, nil
}

// IsCallerError сообщает, вызвана ли ошибка некорректными входными данными,
// а не сбоем генерации.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidGenerationType) || errors.Is(err, ErrEmptyInput)
}
