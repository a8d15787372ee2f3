package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftprompt/swiftprompt/internal/scope"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func rootsFor(dirs ...string) []scope.SearchRoot {
	out := make([]scope.SearchRoot, len(dirs))
	for i, dir := range dirs {
		out[i] = scope.SearchRoot{Dir: dir, Kind: scope.PackageLocal}
	}
	return out
}

func TestDefinitions_FindsDeclarationSites(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Widget.swift"), "struct Widget {\n    let id: Int\n}\n")
	writeFile(t, filepath.Join(root, "Gadget.swift"), "final class Gadget {}\n")
	writeFile(t, filepath.Join(root, "Usage.swift"), "let w = Widget()\n") // mention, not a declaration
	writeFile(t, filepath.Join(root, "Other.swift"), "enum Unrelated {}\n")

	matches, err := Definitions(rootsFor(root), []string{"Gadget", "Widget"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Gadget.swift"),
		filepath.Join(root, "Widget.swift"),
	}, matches)
}

func TestDefinitions_AllDeclarationKeywords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.swift"), "protocol Renderer {}\n")
	writeFile(t, filepath.Join(root, "B.swift"), "typealias Handler = () -> Void\n")
	writeFile(t, filepath.Join(root, "C.swift"), "actor Store {}\n")

	matches, err := Definitions(rootsFor(root), []string{"Handler", "Renderer", "Store"}, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestDefinitions_OverMatchingIsTolerated(t *testing.T) {
	root := t.TempDir()
	// The keyword-plus-name pair appears only inside a comment; the lexical
	// matcher still returns the file.
	writeFile(t, filepath.Join(root, "Doc.swift"), "// the struct Widget used to live here\n")

	matches, err := Definitions(rootsFor(root), []string{"Widget"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Doc.swift")}, matches)
}

func TestDefinitions_NoPartialNameMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.swift"), "struct WidgetFactory {}\n")

	matches, err := Definitions(rootsFor(root), []string{"Widget"}, nil)
	require.NoError(t, err)
	assert.Empty(t, matches, "word boundary prevents prefix matches")
}

func TestDefinitions_SkipsNonSourceAndExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.swift"), "struct Widget {}\n")
	writeFile(t, filepath.Join(root, "notes.md"), "struct Widget {}\n")
	writeFile(t, filepath.Join(root, ".build", "gen.swift"), "struct Widget {}\n")
	writeFile(t, filepath.Join(root, "Pods", "Dep.swift"), "struct Widget {}\n")

	matches, err := Definitions(rootsFor(root), []string{"Widget"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "A.swift")}, matches)
}

func TestDefinitions_DeduplicatesAcrossNestedRoots(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "Packages", "Core")
	writeFile(t, filepath.Join(pkg, "Widget.swift"), "struct Widget {}\n")

	matches, err := Definitions(rootsFor(root, pkg), []string{"Widget"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(pkg, "Widget.swift")}, matches, "file under two roots appears once")
}

func TestDefinitions_EmptyCandidates(t *testing.T) {
	matches, err := Definitions(rootsFor(t.TempDir()), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReferences_MatchesAnywhere(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Decl.swift"), "struct Widget {}\n")
	writeFile(t, filepath.Join(root, "Use.swift"), "let w = Widget()\n")
	writeFile(t, filepath.Join(root, "None.swift"), "let x = 1\n")

	matches, err := References(rootsFor(root), "Widget", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Decl.swift"),
		filepath.Join(root, "Use.swift"),
	}, matches)
}
