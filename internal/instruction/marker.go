package instruction

import (
	"regexp"
	"strings"
)

// MarkerKind identifies which spelling of the instruction marker was found.
type MarkerKind int

const (
	// MarkerChatGPT is the canonical spelling: "// TODO: ChatGPT: <text>".
	MarkerChatGPT MarkerKind = iota

	// MarkerLegacy is the older spelling: "// TODO: - <text>".
	MarkerLegacy
)

const (
	// CanonicalToken prefixes the canonical instruction marker.
	CanonicalToken = "// TODO: ChatGPT: "

	// LegacyToken prefixes the legacy instruction marker. It is rewritten to
	// CanonicalToken during bundle assembly.
	LegacyToken = "// TODO: - "
)

var markerPattern = regexp.MustCompile(`^// TODO: (ChatGPT: |- )`)

// Marker is one instruction-marker line.
type Marker struct {
	Kind MarkerKind

	// Line is the full matching line with leading whitespace removed.
	Line string
}

// ParseMarkerLine reports whether line is an instruction marker and, if so,
// returns it. Leading whitespace on the line is ignored.
func ParseMarkerLine(line string) (Marker, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	m := markerPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Marker{}, false
	}

	kind := MarkerChatGPT
	if m[1] == "- " {
		kind = MarkerLegacy
	}
	return Marker{Kind: kind, Line: trimmed}, true
}

// Canonicalize rewrites every legacy marker token in text to the canonical
// token. It is applied to the assembled bundle text, not per file.
func Canonicalize(text string) string {
	return strings.ReplaceAll(text, LegacyToken, CanonicalToken)
}
