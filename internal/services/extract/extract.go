// File: internal/services/extract/extract.go
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxBytes bounds the text carried into a prompt from one file.
const MaxBytes = 200 << 10

var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
	".tsv":  true,
	".log":  true,
}

// ExtractionError describes why a file produced no text.
type ExtractionError struct {
	FileName string
	Reason   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.FileName, e.Reason)
}

// Extract returns the text of an uploaded file. It never fails: unsupported
// or unreadable files yield a bracketed placeholder that is safe to attach
// to a prompt.
func Extract(fileName, mimeType string, data []byte) string {
	name := strings.ToLower(fileName)
	if !Supported(name, mimeType) {
		return fmt.Sprintf("[Unsupported file format: %s]", name)
	}
	text, err := decodeText(name, data)
	if err != nil {
		return fmt.Sprintf("[Error extracting text from %s: %s]", name, err.Reason)
	}
	return text
}

// Supported reports whether the file is one of the plain text formats.
func Supported(fileName, mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") || mimeType == "application/json" {
		return true
	}
	return textExtensions[filepath.Ext(strings.ToLower(fileName))]
}

func decodeText(name string, data []byte) (string, *ExtractionError) {
	if len(data) > MaxBytes {
		data = data[:MaxBytes]
		// Drop a rune split by the cut, nothing more.
		for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
			start := len(data) - i
			if utf8.RuneStart(data[start]) {
				if !utf8.FullRune(data[start:]) {
					data = data[:start]
				}
				break
			}
		}
	}
	if !utf8.Valid(data) {
		return "", &ExtractionError{FileName: name, Reason: "file is not valid UTF-8 text"}
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	return strings.TrimSpace(text), nil
}
