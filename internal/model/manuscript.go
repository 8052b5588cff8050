package model

import (
	"time"

	"github.com/google/uuid"
)

// ManuscriptFormat - формат загруженного файла рукописи.
type ManuscriptFormat string

const (
	FormatDOCX ManuscriptFormat = "docx"
	FormatPDF  ManuscriptFormat = "pdf"
)

// TextStats - статистический анализ извлеченного текста рукописи.
// Хранится вместе с рукописью как jsonb.
type TextStats struct {
	CharCount          int     `json:"char_count"`
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	UniqueWordCount    int     `json:"unique_word_count"`
	AvgSentenceWords   float64 `json:"avg_sentence_words"`
	ReadingTimeMinutes int     `json:"reading_time_minutes"`
	TokenCount         int     `json:"token_count"`
}

// Manuscript представляет загруженную рукопись с извлеченным текстом.
type Manuscript struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	UserID        uuid.UUID        `json:"user_id" db:"user_id"`
	Filename      string           `json:"filename" db:"filename"`
	Format        ManuscriptFormat `json:"format" db:"format"`
	SizeBytes     int64            `json:"size_bytes" db:"size_bytes"`
	ExtractedText string           `json:"-" db:"extracted_text"`
	Stats         TextStats        `json:"stats" db:"stats"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// ManuscriptSummary - сокращенная версия Manuscript для списков,
// без извлеченного текста.
type ManuscriptSummary struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Filename  string           `json:"filename" db:"filename"`
	Format    ManuscriptFormat `json:"format" db:"format"`
	SizeBytes int64            `json:"size_bytes" db:"size_bytes"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
