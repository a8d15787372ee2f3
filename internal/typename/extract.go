package typename

import (
	"regexp"
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/swiftprompt/swiftprompt/internal/lang"
)

// candidatePattern matches a bare token that plausibly names a type: an
// identifier starting with an uppercase letter, at least two characters long.
var candidatePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]+$`)

// reservedWords are capitalized tokens that are part of the language rather
// than user-defined types.
var reservedWords = map[string]bool{
	"Any":       true,
	"AnyObject": true,
	"Self":      true,
	"Type":      true,
	"Protocol":  true,
}

// Extract returns the candidate type names referenced in src, deduplicated and
// sorted.
//
// The extraction is lexical and intentionally heuristic: every capitalized
// bare-word token outside comments and import lines qualifies. False positives
// are tolerated downstream (a spurious name simply matches no declaration),
// and indirectly-referenced types may be missed.
func Extract(src string) []string {
	seen := map[string]bool{}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, lang.CommentToken) {
			continue
		}

		// Underscores join words under UAX #29 segmentation; treating them as
		// separators keeps snake_case fragments from masking a type name.
		tokens := words.FromString(strings.ReplaceAll(trimmed, "_", " "))
		for tokens.Next() {
			token := tokens.Value()
			if reservedWords[token] {
				continue
			}
			if candidatePattern.MatchString(token) {
				seen[token] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
