// Package wordlist provides word normalization and list loaders.
package wordlist

import (
	"strings"

	"github.com/verte-zerg/wordsieve/internal/model"
)

// Normalize trims surrounding whitespace, requires exactly five ASCII
// letters and lowercases them. Words that fail are reported with ok=false.
func Normalize(raw string) (string, bool) {
	word := strings.TrimSpace(raw)
	if len(word) != model.WordLength {
		return "", false
	}
	var buf [model.WordLength]byte
	for i := 0; i < len(word); i++ {
		ch := word[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			buf[i] = ch
		case ch >= 'A' && ch <= 'Z':
			buf[i] = ch + ('a' - 'A')
		default:
			return "", false
		}
	}
	return string(buf[:]), true
}
