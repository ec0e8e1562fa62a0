package textproc

// Category classifies a segment's word count.
type Category string

const (
	CategoryShort  Category = "short"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
)

// Word-count thresholds for length categories. Fixed configuration
// constants, not computed.
const (
	shortMaxWords  = 100
	mediumMaxWords = 500
)

// Categorize maps a word count onto a length category: below 100 words is
// short, below 500 medium, everything else long.
func Categorize(wordCount int) Category {
	switch {
	case wordCount < shortMaxWords:
		return CategoryShort
	case wordCount < mediumMaxWords:
		return CategoryMedium
	default:
		return CategoryLong
	}
}
