// File: internal/services/chat/context.go
package chat

import (
	"strings"
	"unicode/utf8"
)

// TruncateText safely truncates a UTF-8 string to maxLen runes, preserving character integrity
func TruncateText(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

// SanitizeForPrompt removes characters that upset the completion endpoint
// and collapses runs of blank lines. Extracted document text is the usual
// source of both.
func SanitizeForPrompt(input string) string {
	sanitized := strings.ReplaceAll(input, "\x00", "")
	sanitized = strings.ReplaceAll(sanitized, "\r\n", "\n")
	sanitized = strings.ReplaceAll(sanitized, "\r", "\n")

	for strings.Contains(sanitized, "\n\n\n") {
		sanitized = strings.ReplaceAll(sanitized, "\n\n\n", "\n\n")
	}
	return sanitized
}
