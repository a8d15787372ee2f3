// Package bundle assembles the final context bundle: per-file sections with
// region filtering and optional diff annotation, marker canonicalization, the
// trailing instruction text, and a size guard.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swiftprompt/swiftprompt/internal/diff"
	"github.com/swiftprompt/swiftprompt/internal/instruction"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

const sectionSeparator = "--------------------"

// Options configure assembly. The assembler is pure with respect to its
// inputs: delivering the bundle (clipboard, stdout) is the caller's job.
type Options struct {
	// DiffBranch, when non-empty, appends a diff section for every file whose
	// current content differs from its version on that branch.
	DiffBranch string

	// ContentAtBranch returns a file's content as of DiffBranch, with ok=false
	// if the file doesn't exist there. Required when DiffBranch is set.
	ContentAtBranch func(absPath string) (content string, ok bool, err error)

	Log *verbose.Logger
}

// Assemble builds one bundle from the final deduplicated, sorted file list and
// the instruction text.
//
// For each file, in order: a header naming the file, the (possibly
// region-filtered) content, and, when a comparison branch is configured and
// the file differs from it, a diff section. The legacy marker token is then
// rewritten to the canonical one across the concatenated sections, and the
// instruction text is appended unmodified as the final section.
//
// Assembly is deterministic: the same inputs always produce byte-identical
// output.
func Assemble(paths []string, instructionText string, opts Options) (string, error) {
	var b strings.Builder

	for _, path := range paths {
		content := readFileOrEmpty(path, opts.Log)

		b.WriteString(fileHeader(path))
		b.WriteString("\n")
		b.WriteString(ensureTrailingNewline(FilterRegions(content)))
		b.WriteString("\n")
		b.WriteString(sectionSeparator)
		b.WriteString("\n")

		if opts.DiffBranch != "" {
			section, err := diffSection(path, content, opts)
			if err != nil {
				return "", err
			}
			b.WriteString(section)
		}
	}

	text := instruction.Canonicalize(b.String())
	return text + instructionText + "\n", nil
}

// fileHeader names a file section. The grammar is fixed; downstream prompts
// key off it.
func fileHeader(path string) string {
	return fmt.Sprintf("The contents of %s is as follows:\n", filepath.Base(path))
}

// diffSection returns the diff section for path, or "" when the file matches
// the comparison branch.
func diffSection(path, content string, opts Options) (string, error) {
	if opts.ContentAtBranch == nil {
		return "", fmt.Errorf("bundle: diff branch %q configured without branch content lookup", opts.DiffBranch)
	}

	old, ok, err := opts.ContentAtBranch(path)
	if err != nil {
		return "", fmt.Errorf("bundle: content of %s at branch %s: %w", path, opts.DiffBranch, err)
	}
	if !ok {
		// Absent from the branch: the whole file is new, diff against empty.
		old = ""
	}

	body := diff.Render(old, content)
	if body == "" {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The diff of %s against branch `%s` is as follows:\n\n", filepath.Base(path), opts.DiffBranch)
	b.WriteString(ensureTrailingNewline(body))
	b.WriteString("\n")
	b.WriteString(sectionSeparator)
	b.WriteString("\n")
	return b.String(), nil
}

// readFileOrEmpty reads path, treating failures as empty content. Matched
// files that became unreadable between stages degrade to an empty section
// rather than aborting the run.
func readFileOrEmpty(path string, log *verbose.Logger) string {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Logf("bundle: unreadable file %s: %v", path, err)
		return ""
	}
	return string(content)
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
