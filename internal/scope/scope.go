package scope

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/swiftprompt/swiftprompt/internal/lang"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

// Kind says how a search root was determined.
type Kind int

const (
	// PackageLocal roots come from package-manifest discovery.
	PackageLocal Kind = iota

	// Global roots cover a whole tree without regard to package boundaries.
	Global
)

// SearchRoot is one directory in which definition search is performed.
type SearchRoot struct {
	Dir  string
	Kind Kind
}

// Resolve computes the search roots for definition search under root.
//
// If root itself directly contains a package manifest, the result is exactly
// {root}: a package scopes its own symbol search, regardless of nested
// sub-packages. Otherwise the result is root (unless root's own basename is
// the build-artifact directory) plus every descendant directory that directly
// contains a manifest, excluding manifests under build-artifact or vendored
// paths. The result is deduplicated and sorted by path.
//
// When global is true, package boundaries are ignored and the result is
// exactly {root} tagged Global.
func Resolve(root string, global bool, log *verbose.Logger) ([]SearchRoot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scope: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scope: %s is not a directory", root)
	}

	if global {
		log.Logf("scope: global search rooted at %s", root)
		return []SearchRoot{{Dir: root, Kind: Global}}, nil
	}

	if isPackageRoot(root) {
		log.Logf("scope: %s is a package root", root)
		return []SearchRoot{{Dir: root, Kind: PackageLocal}}, nil
	}

	dirs := map[string]bool{}
	if filepath.Base(root) != lang.BuildDirName {
		dirs[root] = true
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Logf("scope: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && lang.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == lang.ManifestFilename {
			dirs[filepath.Dir(path)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scope: walk %s: %w", root, err)
	}

	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	roots := make([]SearchRoot, len(sorted))
	for i, dir := range sorted {
		roots[i] = SearchRoot{Dir: dir, Kind: PackageLocal}
		log.Logf("scope: search root %s", dir)
	}
	return roots, nil
}

func isPackageRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, lang.ManifestFilename))
	return err == nil && info.Mode().IsRegular()
}
