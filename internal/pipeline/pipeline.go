// Package pipeline wires the resolution stages together: locate the
// instruction, extract candidate type names, resolve search roots, find
// definition (and optionally reference) files, and assemble the bundle.
//
// Each stage fully materializes its output before the next starts, and no
// stage holds state beyond its own invocation; configuration is an explicit
// immutable value, never ambient process state.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/swiftprompt/swiftprompt/internal/bundle"
	"github.com/swiftprompt/swiftprompt/internal/gitrepo"
	"github.com/swiftprompt/swiftprompt/internal/instruction"
	"github.com/swiftprompt/swiftprompt/internal/lang"
	"github.com/swiftprompt/swiftprompt/internal/scope"
	"github.com/swiftprompt/swiftprompt/internal/search"
	"github.com/swiftprompt/swiftprompt/internal/typename"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

// ErrUnsupportedMode indicates a flag combination the pipeline cannot honor,
// such as reference expansion on a non-Swift instruction file.
var ErrUnsupportedMode = errors.New("unsupported mode")

// slimKeywords mark files whose basename suggests a UI or orchestration role;
// slim mode drops them, keeping the instruction file and model-like files.
var slimKeywords = []string{
	"View", "Controller", "Coordinator", "Cell", "Screen", "Button", "Layout", "Storyboard",
}

// Config is the immutable per-run configuration, threaded through every stage.
type Config struct {
	// Root is the repository root to scan. Must be an existing directory.
	Root string

	// Slim restricts inclusion to the instruction file and model-like files.
	Slim bool

	// Singular restricts inclusion to the instruction file only.
	Singular bool

	// ForceGlobal ignores package boundaries when computing search roots.
	ForceGlobal bool

	// IncludeReferences adds files that mention the enclosing type anywhere.
	// Valid only when the instruction file is a Swift file.
	IncludeReferences bool

	// DiffBranch, when non-empty, annotates changed files with a diff against
	// that branch.
	DiffBranch string

	// Excludes are basenames to drop from the final file list.
	Excludes []string

	// Log receives verbose trace output; nil is silent.
	Log *verbose.Logger
}

// Result is a completed run: the assembled bundle plus reporting detail.
type Result struct {
	// Bundle is the final assembled text.
	Bundle string

	// Files are the bundled file paths, deduplicated and sorted.
	Files []string

	// Instruction is the resolved instruction marker line.
	Instruction string

	// SizeWarning is non-empty when the bundle exceeds the size threshold.
	// It is advisory; the bundle is still delivered.
	SizeWarning string
}

// Run executes the whole pipeline. There is no partial success: either a
// complete bundle is produced, or an error is returned before any output.
func Run(cfg Config) (*Result, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("pipeline: root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pipeline: root %s is not a directory", root)
	}

	if cfg.Singular && cfg.IncludeReferences {
		return nil, fmt.Errorf("pipeline: %w: singular mode cannot include references", ErrUnsupportedMode)
	}

	inst, err := instruction.Locate(root, cfg.Log)
	if err != nil {
		return nil, err
	}

	paths, err := resolveFiles(root, inst, cfg)
	if err != nil {
		return nil, err
	}
	paths = applyFilters(paths, inst.Path, cfg)

	opts := bundle.Options{Log: cfg.Log}
	if cfg.DiffBranch != "" {
		if err := gitrepo.VerifyBranch(root, cfg.DiffBranch); err != nil {
			return nil, err
		}
		opts.DiffBranch = cfg.DiffBranch
		opts.ContentAtBranch = func(absPath string) (string, bool, error) {
			return gitrepo.FileAtBranch(root, cfg.DiffBranch, absPath)
		}
	}

	text, err := bundle.Assemble(paths, inst.Marker.Line, opts)
	if err != nil {
		return nil, err
	}

	warning, _ := bundle.SizeWarning(text)
	if cfg.Log.Enabled() {
		// The token estimate loads a tokenizer; don't pay for it when silent.
		cfg.Log.Logf("pipeline: %d files, %d characters, ~%d tokens", len(paths), len(text), bundle.TokenEstimate(text))
	}

	return &Result{
		Bundle:      text,
		Files:       paths,
		Instruction: inst.Marker.Line,
		SizeWarning: warning,
	}, nil
}

// resolveFiles produces the candidate file set for the bundle: the instruction
// file, its type-definition files, and optionally reference files.
func resolveFiles(root string, inst *instruction.Instruction, cfg Config) ([]string, error) {
	if cfg.Singular {
		return []string{inst.Path}, nil
	}

	src, err := os.ReadFile(inst.Path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read instruction file: %w", err)
	}

	candidates := typename.Extract(string(src))
	cfg.Log.Logf("pipeline: %d candidate type names in %s", len(candidates), filepath.Base(inst.Path))

	roots, err := scope.Resolve(root, cfg.ForceGlobal, cfg.Log)
	if err != nil {
		return nil, err
	}

	defs, err := search.Definitions(roots, candidates, cfg.Log)
	if err != nil {
		return nil, err
	}
	paths := append([]string{inst.Path}, defs...)

	if cfg.IncludeReferences {
		if !lang.IsPrimarySourceFile(inst.Path) {
			return nil, fmt.Errorf("pipeline: %w: reference expansion requires a %s instruction file, got %s",
				ErrUnsupportedMode, lang.PrimaryExtension, filepath.Ext(inst.Path))
		}
		enclosing, ok := typename.EnclosingType(string(src))
		if !ok {
			return nil, fmt.Errorf("pipeline: %w: no type declaration precedes the instruction marker", ErrUnsupportedMode)
		}
		cfg.Log.Logf("pipeline: expanding references to %s", enclosing)

		refs, err := search.References(roots, enclosing, cfg.Log)
		if err != nil {
			return nil, err
		}
		paths = append(paths, refs...)
	}

	return paths, nil
}

// applyFilters applies slim-mode and explicit-exclude filtering, then
// deduplicates and sorts. The instruction file is always retained.
func applyFilters(paths []string, instructionPath string, cfg Config) []string {
	excluded := make(map[string]bool, len(cfg.Excludes))
	for _, name := range cfg.Excludes {
		excluded[name] = true
	}

	seen := map[string]bool{}
	var out []string
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		if path != instructionPath {
			base := filepath.Base(path)
			if excluded[base] {
				cfg.Log.Logf("pipeline: excluded %s", base)
				continue
			}
			if cfg.Slim && isUILikeBasename(base) {
				cfg.Log.Logf("pipeline: slim mode dropped %s", base)
				continue
			}
		}
		out = append(out, path)
	}

	sort.Strings(out)
	return out
}

func isUILikeBasename(base string) bool {
	for _, kw := range slimKeywords {
		if strings.Contains(base, kw) {
			return true
		}
	}
	return false
}
