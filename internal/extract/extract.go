// Package extract извлекает текст из загруженных файлов рукописей.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"bookcopy-server/internal/model"
)

// FormatForFilename определяет формат рукописи по расширению файла.
// Возвращает ErrUnsupportedFormat для всего, кроме .docx и .pdf.
func FormatForFilename(filename string) (model.ManuscriptFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return model.FormatDOCX, nil
	case ".pdf":
		return model.FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Сигнатуры форматов в начале файла. DOCX это zip архив.
var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	pdfMagic = []byte("%PDF-")
)

// Text извлекает текст рукописи из содержимого файла.
// Содержимое сверяется с сигнатурой формата: расширению доверять нельзя,
// PDF переименованный в .docx отклоняется как ErrUnsupportedFormat.
func Text(format model.ManuscriptFormat, data []byte) (string, error) {
	switch format {
	case model.FormatDOCX:
		if !bytes.HasPrefix(data, zipMagic) {
			return "", fmt.Errorf("%w: file content is not a docx archive", model.ErrUnsupportedFormat)
		}
		return docxText(data)
	case model.FormatPDF:
		if !bytes.HasPrefix(data, pdfMagic) {
			return "", fmt.Errorf("%w: file content is not a pdf document", model.ErrUnsupportedFormat)
		}
		return pdfText(data)
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, format)
	}
}
