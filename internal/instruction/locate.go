package instruction

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/swiftprompt/swiftprompt/internal/lang"
	"github.com/swiftprompt/swiftprompt/internal/verbose"
)

// ErrNotFound indicates that no file under the root contains an instruction
// marker.
var ErrNotFound = errors.New("no file contains an instruction marker")

// ErrAmbiguous indicates that more than one file under the root contains an
// instruction marker. Ambiguity is a property of the count of files, not of
// marker lines: a single file may contain several markers without being
// ambiguous.
var ErrAmbiguous = errors.New("multiple files contain an instruction marker")

// Instruction is the single resolved instruction for a run.
type Instruction struct {
	// Path is the absolute path of the file containing the marker.
	Path string

	// Marker is the first marker line found in the file.
	Marker Marker
}

// Locate scans every regular file under root (skipping build-artifact and
// vendored-dependency directories) and returns the single file containing an
// instruction marker.
//
// It fails with ErrNotFound when no file qualifies and ErrAmbiguous when more
// than one does. Files that cannot be read are skipped (logged when log is
// enabled); they never fail the scan.
func Locate(root string, log *verbose.Logger) (*Instruction, error) {
	var matched []*Instruction

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Logf("instruction: skipping %s: %v", path, err)
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
		if !d.Type().IsRegular() {
			return nil
		}

		marker, ok, readErr := firstMarkerInFile(path)
		if readErr != nil {
			log.Logf("instruction: unreadable file %s: %v", path, readErr)
			return nil
		}
		if ok {
			matched = append(matched, &Instruction{Path: path, Marker: marker})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("instruction: walk %s: %w", root, err)
	}

	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("instruction: %w under %s", ErrNotFound, root)
	case 1:
		log.Logf("instruction: found marker in %s", matched[0].Path)
		return matched[0], nil
	default:
		paths := make([]string, len(matched))
		for i, m := range matched {
			paths[i] = m.Path
		}
		sort.Strings(paths)
		return nil, fmt.Errorf("instruction: %w: %s", ErrAmbiguous, strings.Join(paths, ", "))
	}
}

// firstMarkerInFile returns the first instruction marker in the file at path.
// Subsequent marker lines in the same file are ignored.
func firstMarkerInFile(path string) (Marker, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Marker{}, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if m, ok := ParseMarkerLine(scanner.Text()); ok {
			return m, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Marker{}, false, err
	}
	return Marker{}, false, nil
}
