package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationStatus - состояние запроса генерации.
type GenerationStatus string

const (
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// Generation представляет один запрос генерации маркетингового текста и его результат.
// При сбое в Error хранится только общее сообщение - детали провайдера остаются в логах.
type Generation struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	ManuscriptID uuid.UUID        `json:"manuscript_id" db:"manuscript_id"`
	UserID       uuid.UUID        `json:"user_id" db:"user_id"`
	Type         string           `json:"type" db:"generation_type"`
	Status       GenerationStatus `json:"status" db:"status"`
	ResultText   string           `json:"result_text,omitempty" db:"result_text"`
	Error        string           `json:"error,omitempty" db:"error_message"`
	DurationMs   int64            `json:"duration_ms" db:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}
