package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"bookcopy-server/internal/model"
)

// docxText извлекает текст из DOCX файла: абзацы и таблицы документа
// склеиваются через перевод строки, форматирование не сохраняется.
func docxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", model.ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := strings.TrimSpace(it.String())
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		case *docx.Table:
			text := strings.TrimSpace(it.String())
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
