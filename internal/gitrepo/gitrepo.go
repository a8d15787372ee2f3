// Package gitrepo shells out to git for the two repository facts the tool
// needs: where the repository root is, and what a file looked like on another
// branch.
package gitrepo

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Root returns the top-level directory of the git repository containing dir.
func Root(dir string) (string, error) {
	out, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("gitrepo: %s is not inside a git repository: %w", dir, err)
	}
	return strings.TrimSpace(out), nil
}

// VerifyBranch reports an error if branch does not name a commit in the
// repository rooted at repoRoot.
func VerifyBranch(repoRoot, branch string) error {
	if _, err := run(repoRoot, "rev-parse", "--verify", "--quiet", branch+"^{commit}"); err != nil {
		return fmt.Errorf("gitrepo: unknown branch %q: %w", branch, err)
	}
	return nil
}

// FileAtBranch returns the content of the file at absPath as recorded on
// branch. ok is false if the file does not exist on that branch.
//
// Callers should VerifyBranch first; with a known-good branch, a git failure
// here means the path is absent from the branch, not a fatal condition.
func FileAtBranch(repoRoot, branch, absPath string) (content string, ok bool, err error) {
	rel, err := filepath.Rel(repoRoot, absPath)
	if err != nil {
		return "", false, fmt.Errorf("gitrepo: %s is outside repository %s: %w", absPath, repoRoot, err)
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return "", false, fmt.Errorf("gitrepo: %s is outside repository %s", absPath, repoRoot)
	}

	out, err := run(repoRoot, "show", branch+":"+rel)
	if err != nil {
		return "", false, nil
	}
	return out, true, nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
