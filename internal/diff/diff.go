// Package diff renders line-based diffs between two versions of a file for
// inclusion in a context bundle.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Render diffs oldText to newText and returns the changed lines: deleted lines
// prefixed with "- " and inserted lines prefixed with "+ ", in file order.
// Unchanged lines are omitted. It returns "" when the texts are identical.
func Render(oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Diff based on lines: encode each distinct line as a rune, diff the rune
	// strings, then decode back through the lineArray mapping.
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	var b strings.Builder
	for _, d := range lineDiffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range decode(d.Text) {
			b.WriteString(prefix)
			b.WriteString(strings.TrimRight(line, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
