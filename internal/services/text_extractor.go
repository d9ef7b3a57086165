package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// TextExtractor turns a stored resume file into plain text. Failures are
// logged and reported as empty text so that a bad file only costs the
// candidate their tokens.
type TextExtractor interface {
	ExtractText(filePath string) string
}

type textExtractor struct {
	log *zap.Logger
}

func NewTextExtractor(log *zap.Logger) TextExtractor {
	return &textExtractor{log: log}
}

// ExtractText implements TextExtractor.
func (t *textExtractor) ExtractText(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, err := extractPDFText(filePath)
		if err != nil {
			t.log.Warn("pdf extraction failed", zap.String("path", filePath), zap.Error(err))
			return ""
		}
		t.log.Debug("pdf text extracted", zap.String("path", filePath), zap.Int("chars", len(text)))
		return text
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			t.log.Warn("txt read failed", zap.String("path", filePath), zap.Error(err))
			return ""
		}
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	default:
		return ""
	}
}

// extractPDFText concatenates the plain text of every page in document order.
// The pdf package panics on some malformed inputs, so panics become errors.
func extractPDFText(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Keep whatever the other pages yield.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
