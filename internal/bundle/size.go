package bundle

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiktoken-go/tokenizer"
)

// SizeWarnThreshold is the bundle size, in characters, above which a warning
// is emitted. The warning never blocks delivery of the bundle.
const SizeWarnThreshold = 100_000

// SizeWarning returns a warning naming the measured size when text exceeds
// SizeWarnThreshold, and ok=false otherwise.
func SizeWarning(text string) (string, bool) {
	size := utf8.RuneCountInString(text)
	if size <= SizeWarnThreshold {
		return "", false
	}
	return fmt.Sprintf("warning: bundle is %d characters (threshold %d); the model may truncate it", size, SizeWarnThreshold), true
}

// TokenEstimate estimates the LLM token count of text using the O200k base
// encoding. If the tokenizer is unavailable it falls back to the usual
// 4-characters-per-token approximation.
func TokenEstimate(text string) int {
	enc, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		return len(text) / 4
	}
	count, err := enc.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}
