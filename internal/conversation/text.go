package conversation

import (
	"html"
	"regexp"
	"strings"
)

var (
	// Compiled regex patterns for better performance
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanBody strips HTML tags from a thread body, decodes entities and
// collapses runs of whitespace to single spaces.
func CleanBody(body string) string {
	text := tagPattern.ReplaceAllString(body, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate cuts text to at most limit runes, appending an ellipsis
// when anything was dropped. Cutting on runes keeps a multi-byte
// character at the boundary intact.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
