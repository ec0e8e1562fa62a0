// Package textproc provides the pure-text transforms used to prepare
// transcript segments for embedding: spacing normalization, filler removal,
// length categorization and word-window chunking.
package textproc

import (
	"regexp"
	"strings"
)

// ellipsisPlaceholder masks 3+ period runs so the sentence-spacing rule
// does not tear them apart.
const ellipsisPlaceholder = "ELLIPSIS_PLACEHOLDER"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	ellipsisRun   = regexp.MustCompile(`\.{3,}`)
	sentenceSpace = regexp.MustCompile(`([.!?])\s*`)
)

// Normalize collapses whitespace runs to single spaces and enforces exactly
// one space after sentence-ending punctuation, leaving ellipses intact.
// Total over strings and idempotent.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = ellipsisRun.ReplaceAllString(text, ellipsisPlaceholder)
	text = sentenceSpace.ReplaceAllString(text, "$1 ")
	text = strings.ReplaceAll(text, ellipsisPlaceholder, "...")
	return strings.TrimSpace(text)
}
