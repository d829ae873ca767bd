package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CleanToken strips every non-word character (anything other than letters,
// digits and underscore) and lowercases the rest. "Running," becomes "running".
func CleanToken(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Tokenize splits a sentence on whitespace.
func Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}
