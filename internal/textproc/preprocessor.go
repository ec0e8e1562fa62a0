package textproc

import (
	"regexp"
	"strings"
)

// minCleanLength: cleaned text shorter than this is treated as an artifact
// and discarded.
const minCleanLength = 3

var (
	fillerWords = regexp.MustCompile(`(?i)\b(um|uh|like|you know|i mean|sort of|kind of)\b`)
	// Discourse markers are only removed when another word follows, so a
	// bare "Right." answer survives.
	discourseMarker = regexp.MustCompile(`(?i)\b(so|well|right|okay)\b(\s+\w)`)
	bracketedAside  = regexp.MustCompile(`\[[^\]]*\]`)

	doubleComma       = regexp.MustCompile(`,\s*,`)
	commaBeforePeriod = regexp.MustCompile(`,\s*\.`)
	commaAfterPeriod  = regexp.MustCompile(`\.\s*,`)
	trailingComma     = regexp.MustCompile(`,\s*$`)
	leadingComma      = regexp.MustCompile(`^\s*,`)

	terminalRun = regexp.MustCompile(`[.!?]{2,}`)
	commaRun    = regexp.MustCompile(`,{2,}`)
)

// Clean strips filler words, discourse markers and bracketed stage
// directions, repairs the punctuation artifacts the removals leave behind,
// and normalizes spacing. An empty return value means the segment carries no
// usable content and must be dropped by the caller.
func Clean(text string) string {
	text = fillerWords.ReplaceAllString(text, "")
	// Re-running until stable removes stacked markers ("so well then")
	// that a single pass would leave, since the trailing word context is
	// consumed by each match.
	for {
		next := discourseMarker.ReplaceAllString(text, "$2")
		if next == text {
			break
		}
		text = next
	}
	text = bracketedAside.ReplaceAllString(text, "")

	text = fixPunctuationArtifacts(text)

	text = terminalRun.ReplaceAllString(text, ".")
	text = commaRun.ReplaceAllString(text, ",")

	text = Normalize(text)

	if len(strings.TrimSpace(text)) < minCleanLength {
		return ""
	}
	return text
}

// fixPunctuationArtifacts repairs the seams left where filler words were
// cut out, e.g. "Yes. , my in-laws" or "went home,.".
func fixPunctuationArtifacts(text string) string {
	text = doubleComma.ReplaceAllString(text, ",")
	text = commaBeforePeriod.ReplaceAllString(text, ".")
	text = commaAfterPeriod.ReplaceAllString(text, ".")
	text = trailingComma.ReplaceAllString(text, "")
	text = leadingComma.ReplaceAllString(text, "")
	return text
}
