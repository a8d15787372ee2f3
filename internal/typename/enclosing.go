package typename

import (
	"regexp"
	"strings"

	"github.com/swiftprompt/swiftprompt/internal/instruction"
	"github.com/swiftprompt/swiftprompt/internal/lang"
)

var declNamePattern = regexp.MustCompile(`\b(?:` + strings.Join(lang.DeclKeywords, "|") + `)\s+([A-Z][A-Za-z0-9]*)`)

// EnclosingType returns the name of the type declaration that lexically
// contains the first instruction marker in src: the nearest declaration line
// preceding the marker. It returns false if src has no marker or the marker
// precedes every declaration.
//
// Like the rest of the resolution pipeline this is lexical, not parsed; a
// marker between two top-level declarations is attributed to the earlier one.
func EnclosingType(src string) (string, bool) {
	var enclosing string

	for _, line := range strings.Split(src, "\n") {
		if _, ok := instruction.ParseMarkerLine(line); ok {
			return enclosing, enclosing != ""
		}
		if m := declNamePattern.FindStringSubmatch(line); m != nil {
			enclosing = m[1]
		}
	}
	return "", false
}
