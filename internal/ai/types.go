package ai

import "fmt"

// GenerationType определяет вид маркетингового текста, который генерируется по рукописи.
type GenerationType string

const (
	TypeBlurb       GenerationType = "blurb"       // Короткая аннотация для обложки
	TypeDescription GenerationType = "description" // Описание книги для магазинов
	TypeKeywords    GenerationType = "keywords"    // Ключевые слова для поиска
	TypeCategories  GenerationType = "categories"  // Основная и дополнительные категории (JSON)
	TypeForeword    GenerationType = "foreword"    // Предисловие
	TypeAnalysis    GenerationType = "analysis"    // Редакторский анализ текста
)

// AllGenerationTypes перечисляет все поддерживаемые типы генерации.
// Порядок фиксирован и используется при загрузке переопределений из конфигурации.
var AllGenerationTypes = []GenerationType{
	TypeBlurb,
	TypeDescription,
	TypeKeywords,
	TypeCategories,
	TypeForeword,
	TypeAnalysis,
}

// ParseGenerationType проверяет строковый тег и возвращает GenerationType.
// Для неизвестного тега возвращает ErrInvalidGenerationType.
func ParseGenerationType(s string) (GenerationType, error) {
	gt := GenerationType(s)
	for _, known := range AllGenerationTypes {
		if gt == known {
			return gt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGenerationType, s)
}

// String возвращает строковое представление типа.
func (t GenerationType) String() string {
	return string(t)
}
