package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookcopy-server/internal/ai"
	"bookcopy-server/internal/model"
)

// handleServiceError преобразует ошибки доменного слоя в HTTP ответы.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid username or password"
	case errors.Is(err, model.ErrUserAlreadyExists):
		statusCode = http.StatusConflict
		message = "Username already exists"
	case errors.Is(err, model.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		message = "Email already exists"
	case errors.Is(err, model.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrTokenInvalid), errors.Is(err, model.ErrTokenMalformed):
		statusCode = http.StatusUnauthorized
		message = "Token is invalid or malformed"
	case errors.Is(err, model.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		message = "Token has expired"
	case errors.Is(err, model.ErrTokenNotFound):
		statusCode = http.StatusUnauthorized
		message = "Provided token is invalid (possibly revoked or expired)"
	case errors.Is(err, model.ErrManuscriptNotFound):
		statusCode = http.StatusNotFound
		message = "Manuscript not found"
	case errors.Is(err, model.ErrGenerationNotFound):
		statusCode = http.StatusNotFound
		message = "Generation not found"
	case errors.Is(err, model.ErrUnsupportedFormat):
		statusCode = http.StatusBadRequest
		message = "Unsupported file format, expected .docx or .pdf"
	case errors.Is(err, model.ErrFileTooLarge):
		statusCode = http.StatusRequestEntityTooLarge
		message = "Uploaded file is too large"
	case errors.Is(err, model.ErrExtractionFailed):
		// Детали сбоя парсера остаются в логах, клиенту уходит общий ответ.
		statusCode = http.StatusUnprocessableEntity
		message = "Could not extract text from the file"
	case errors.Is(err, model.ErrEmptyManuscript):
		statusCode = http.StatusUnprocessableEntity
		message = "No text could be extracted from the file"
	case errors.Is(err, ai.ErrInvalidGenerationType):
		statusCode = http.StatusBadRequest
		message = "Unknown generation type"
	case errors.Is(err, ai.ErrEmptyInput):
		statusCode = http.StatusBadRequest
		message = "Manuscript has no text to generate from"
	case errors.Is(err, ai.ErrGenerationFailed):
		// Детали сбоя провайдера наружу не отдаем, они остаются в логах.
		statusCode = http.StatusBadGateway
		message = "Generation failed, please try again later"
	case errors.Is(err, model.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal error occurred"
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}
