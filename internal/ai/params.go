package ai

// GenerationParams задает параметры запроса к модели для одного типа генерации.
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
}

// ParamsOverride - переопределение параметров из внешней конфигурации.
// Используем указатели, чтобы отличить 0/0.0 от отсутствия значения.
type ParamsOverride struct {
	Temperature *float64
	MaxTokens   *int
}

// defaultParams - параметры по умолчанию для каждого типа генерации.
var defaultParams = map[GenerationType]GenerationParams{
	TypeBlurb:       {Temperature: 0.7, MaxTokens: 500},
	TypeDescription: {Temperature: 0.7, MaxTokens: 500},
	TypeKeywords:    {Temperature: 0.5, MaxTokens: 150},
	TypeCategories:  {Temperature: 0.6, MaxTokens: 200},
	TypeForeword:    {Temperature: 0.7, MaxTokens: 400},
	TypeAnalysis:    {Temperature: 0.8, MaxTokens: 600},
}

// ParamsTable хранит параметры генерации по типам.
// Таблица собирается один раз при старте и после этого только читается,
// поэтому безопасна для конкурентного использования.
type ParamsTable struct {
	params map[GenerationType]GenerationParams
}

// NewParamsTable строит таблицу параметров: значения по умолчанию, поверх
// которых применяются переопределения из конфигурации. Невалидные значения
// (температура вне [0,2], неположительный лимит токенов) молча игнорируются.
func NewParamsTable(overrides map[GenerationType]ParamsOverride) *ParamsTable {
	params := make(map[GenerationType]GenerationParams, len(defaultParams))
	for gt, def := range defaultParams {
		p := def
		if ov, ok := overrides[gt]; ok {
			if ov.Temperature != nil && *ov.Temperature >= 0 && *ov.Temperature <= 2 {
				p.Temperature = float32(*ov.Temperature)
			}
			if ov.MaxTokens != nil && *ov.MaxTokens > 0 {
				p.MaxTokens = *ov.MaxTokens
			}
		}
		params[gt] = p
	}
	return &ParamsTable{params: params}
}

// Params возвращает параметры генерации для типа.
// Для неизвестного типа возвращает ErrInvalidGenerationType.
func (t *ParamsTable) Params(generationType GenerationType) (GenerationParams, error) {
	p, ok := t.params[generationType]
	if !ok {
		return GenerationParams{}, ErrInvalidGenerationType
	}
	return p, nil
}
