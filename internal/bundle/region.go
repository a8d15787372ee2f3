package bundle

import "strings"

// Region markers let a file opt into partial inclusion: only the text between
// a begin line and an end line is bundled verbatim; everything outside is
// collapsed to a single placeholder comment line. A file may contain several
// begin/end pairs; each pair is emitted as placeholder-then-region in file
// order.
const (
	RegionBeginToken = "swiftprompt:begin"
	RegionEndToken   = "swiftprompt:end"

	regionPlaceholder = "// ..."
)

// FilterRegions applies region-marker filtering to content. Content without a
// begin marker is returned unchanged.
func FilterRegions(content string) string {
	if !strings.Contains(content, RegionBeginToken) {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var out []string
	inRegion := false
	elided := false

	flushElided := func() {
		if elided {
			out = append(out, regionPlaceholder)
			elided = false
		}
	}

	for _, line := range lines {
		switch {
		case !inRegion && strings.Contains(line, RegionBeginToken):
			flushElided()
			inRegion = true
		case inRegion && strings.Contains(line, RegionEndToken):
			inRegion = false
		case inRegion:
			out = append(out, line)
		default:
			// Outside every region: remembered only as "something was here".
			elided = true
		}
	}
	flushElided()

	return strings.Join(out, "\n") + "\n"
}
