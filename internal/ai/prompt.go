package ai

import "fmt"

// promptInstructions содержит инструкцию для каждого типа генерации.
// Текст рукописи добавляется после инструкции без изменений, поэтому при
// одинаковых входных данных промпт всегда получается байт-в-байт одинаковым.
var promptInstructions = map[GenerationType]string{
	TypeBlurb: "Напиши короткую цепляющую аннотацию (блерб) для обложки книги по тексту рукописи ниже. " +
		"Объем - 2-3 предложения, без спойлеров, в настоящем времени.",
	TypeDescription: "Напиши развернутое описание книги для страницы интернет-магазина по тексту рукописи ниже. " +
		"Описание должно заинтересовать читателя, передать жанр и атмосферу, но не раскрывать развязку.",
	TypeKeywords: "Подбери список ключевых слов для поисковой оптимизации страницы книги по тексту рукописи ниже. " +
		"Верни 10-15 ключевых слов и фраз, разделенных запятыми, без нумерации и пояснений.",
	TypeCategories: "Определи категории книги по тексту рукописи ниже. " +
		`Ответь строго в формате JSON с двумя полями: "main" - строка с основной категорией и "sub" - массив строк с дополнительными категориями. ` +
		"Не добавляй никакого текста вне JSON.",
	TypeForeword: "Напиши предисловие к книге по тексту рукописи ниже. " +
		"Предисловие должно настроить читателя на книгу, обозначить ее темы и контекст, объем - 3-5 абзацев.",
	TypeAnalysis: "Сделай редакторский анализ рукописи ниже: сильные и слабые стороны текста, целевая аудитория, " +
		"жанровая принадлежность, сопоставимые изданные книги и рекомендации по позиционированию.",
}

// BuildPrompt строит промпт для указанного типа генерации.
// Чистая функция: без побочных эффектов и I/O. Текст рукописи
// вставляется в промпт дословно, после инструкции.
func BuildPrompt(generationType GenerationType, sourceText string) (string, error) {
	instruction, ok := promptInstructions[generationType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGenerationType, generationType)
	}
	return fmt.Sprintf("%s\n\nТекст рукописи:\n%s", instruction, sourceText), nil
}
