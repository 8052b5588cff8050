package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"bookcopy-server/internal/model"
)

// pdfText извлекает плоский текст из PDF файла.
// Работает только с текстовым слоем: сканированные PDF без него дадут пустую строку.
// Парсер паникует на некоторых битых файлах, поэтому паника переводится в ошибку.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parse pdf: %v", model.ErrExtractionFailed, r)
		}
	}()
	return parsePDF(data)
}

func parsePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", model.ErrExtractionFailed, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read pdf text layer: %v", model.ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: read pdf text layer: %v", model.ErrExtractionFailed, err)
	}

	return strings.TrimSpace(buf.String()), nil
}
