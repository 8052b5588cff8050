// Package textstats считает легковесную статистику по извлеченному тексту рукописи.
package textstats

import (
	"strings"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"bookcopy-server/internal/model"
)

const (
	encodingName = "cl100k_base"
	// Средняя скорость чтения художественного текста, слов в минуту.
	readingWordsPerMinute = 180
)

// Analyzer считает статистику текста, включая количество LLM токенов.
type Analyzer struct {
	encoder *tiktoken.Tiktoken
	logger  *zap.Logger
}

// NewAnalyzer создает анализатор. Если BPE словарь недоступен (например, нет
// сети для его загрузки), анализатор продолжает работать с приблизительной
// оценкой токенов по числу слов.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	log := logger.Named("TextStats")

	encoder, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		log.Warn("Failed to load tiktoken encoding, token counts will be approximate",
			zap.String("encoding", encodingName), zap.Error(err))
		encoder = nil
	}

	return &Analyzer{encoder: encoder, logger: log}
}

// Analyze считает статистику по тексту рукописи.
func (a *Analyzer) Analyze(text string) model.TextStats {
	words := strings.Fields(text)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		normalized := strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		if normalized != "" {
			unique[normalized] = struct{}{}
		}
	}

	sentences := countSentences(text)

	avgSentenceWords := 0.0
	if sentences > 0 {
		avgSentenceWords = float64(len(words)) / float64(sentences)
	}

	readingMinutes := (len(words) + readingWordsPerMinute - 1) / readingWordsPerMinute

	return model.TextStats{
		CharCount:          len([]rune(text)),
		WordCount:          len(words),
		SentenceCount:      sentences,
		UniqueWordCount:    len(unique),
		AvgSentenceWords:   avgSentenceWords,
		ReadingTimeMinutes: readingMinutes,
		TokenCount:         a.CountTokens(text),
	}
}

// CountTokens возвращает количество LLM токенов в тексте.
func (a *Analyzer) CountTokens(text string) int {
	if a.encoder == nil {
		// Грубая оценка: в среднем ~4 токена на 3 слова.
		return len(strings.Fields(text)) * 4 / 3
	}
	return len(a.encoder.Encode(text, nil, nil))
}

// Truncate обрезает текст до maxTokens токенов. Текст короче лимита
// возвращается без изменений.
func (a *Analyzer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}

	if a.encoder == nil {
		// Без точного токенизатора режем по словам с тем же соотношением
		words := strings.Fields(text)
		maxWords := maxTokens * 3 / 4
		if len(words) <= maxWords {
			return text
		}
		return strings.Join(words[:maxWords], " ")
	}

	tokens := a.encoder.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	a.logger.Debug("Truncating manuscript text for generation",
		zap.Int("tokens", len(tokens)), zap.Int("maxTokens", maxTokens))
	return a.encoder.Decode(tokens[:maxTokens])
}

// countSentences считает предложения по завершающим знакам препинания.
// Последовательности вроде "?!" или "..." считаются одним предложением.
func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?', '…':
			if !inTerminator {
				count++
				inTerminator = true
			}
		default:
			inTerminator = false
		}
	}
	return count
}
