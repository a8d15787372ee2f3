package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/swiftprompt/swiftprompt/internal/lang"
	"github.com/swiftprompt/swiftprompt/internal/scope"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

// Definitions returns every source file under the search roots whose text
// matches a declaration of at least one candidate type name: a declaration
// keyword followed by the name.
//
// This is an over-approximation by design. Any file merely mentioning a
// declaration keyword next to a candidate name qualifies, even inside a
// comment or string; precision is traded for recall and simplicity. The
// result is deduplicated across roots and sorted.
func Definitions(roots []scope.SearchRoot, candidates []string, log *verbose.Logger) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	pattern, err := declarationPattern(candidates)
	if err != nil {
		return nil, err
	}
	return matchFiles(roots, pattern, log)
}

// References returns every source file under the search roots whose text
// mentions name anywhere, not only at a declaration site. There is no upper
// bound on match count; the caller owns the size consequences.
func References(roots []scope.SearchRoot, name string, log *verbose.Logger) ([]string, error) {
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("search: compile reference pattern for %q: %w", name, err)
	}
	return matchFiles(roots, pattern, log)
}

// declarationPattern builds one alternation regex over all candidate names:
// word boundary, a declaration keyword, whitespace, one of the names, word
// boundary.
func declarationPattern(candidates []string) (*regexp.Regexp, error) {
	quoted := make([]string, len(candidates))
	for i, name := range candidates {
		quoted[i] = regexp.QuoteMeta(name)
	}

	expr := `\b(?:` + strings.Join(lang.DeclKeywords, "|") + `)\s+(?:` + strings.Join(quoted, "|") + `)\b`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("search: compile declaration pattern: %w", err)
	}
	return pattern, nil
}

// matchFiles collects candidate source files under all roots, matches pattern
// against each file's content in parallel, and returns the sorted, unique
// matching paths.
//
// Each worker writes only its own slice element, so no mutex is needed; the
// final sort makes the output independent of scheduling order.
func matchFiles(roots []scope.SearchRoot, pattern *regexp.Regexp, log *verbose.Logger) ([]string, error) {
	files, err := collectSourceFiles(roots, log)
	if err != nil {
		return nil, err
	}

	matched := make([]bool, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				// Unreadable files are treated as empty: they fail to match.
				log.Logf("search: unreadable file %s: %v", path, err)
				return nil
			}
			matched[i] = pattern.Match(content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i, ok := range matched {
		if ok {
			out = append(out, files[i])
		}
	}
	sort.Strings(out)
	return out, nil
}

// collectSourceFiles walks the roots and returns the unique allow-listed
// source files, excluding build-artifact and vendored paths. Roots may nest
// (a monorepo root plus its packages), so paths are deduplicated.
func collectSourceFiles(roots []scope.SearchRoot, log *verbose.Logger) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, root := range roots {
		err := filepath.WalkDir(root.Dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Logf("search: skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root.Dir && lang.IsExcludedDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !lang.IsSourceFile(path) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("search: walk %s: %w", root.Dir, err)
		}
	}
	return files, nil
}
