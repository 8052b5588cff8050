package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 300 * time.Second

// ClientConfig содержит настройки клиента completion API.
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client - клиент chat-completion API провайдера.
// Один вызов Complete - ровно один сетевой запрос: без ретраев и без стриминга.
type Client struct {
	openaiClient *openai.Client
	modelName    string
	apiKey       string
}

// NewClient создает новый экземпляр клиента.
func NewClient(cfg ClientConfig) *Client {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &Client{
		openaiClient: openai.NewClientWithConfig(config),
		modelName:    cfg.Model,
		apiKey:       cfg.APIKey,
	}
}

// Complete отправляет один запрос на завершение чата и возвращает сгенерированный текст
// ровно в том виде, в каком его вернул провайдер.
//
// Ошибки: ErrMissingCredential до сетевого вызова, ErrUpstream при неуспешном статусе
// (код и сообщение провайдера остаются внутри обертки), ErrMalformedResponse при
// неразбираемом теле или пустом сгенерированном тексте.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, params GenerationParams) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredential
	}

	resp, err := c.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.modelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: params.Temperature,
			MaxTokens:   params.MaxTokens,
		},
	)
	if err != nil {
		return "", classifyCompletionError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no generated text in response", ErrMalformedResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyCompletionError переводит ошибки go-openai в доменные.
func classifyCompletionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return fmt.Errorf("%w: status %d: %v", ErrUpstream, reqErr.HTTPStatusCode, reqErr.Err)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, reqErr.Err)
	}

	// Успешный статус, но тело не разобралось как JSON ожидаемой формы.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// Все остальное - транспортные сбои на пути к провайдеру.
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
