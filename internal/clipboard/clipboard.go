// Package clipboard copies text to the system clipboard through the
// platform's clipboard utility (pbcopy, wl-copy, xclip, xsel, or clip.exe).
package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// ErrUnavailable indicates that no clipboard utility is usable on this system.
var ErrUnavailable = errors.New("clipboard unavailable")

// copyTool is a command that reads the clipboard payload from stdin.
type copyTool struct {
	cmd  string
	args []string
}

var (
	toolOnce sync.Once
	toolImpl *copyTool
	toolErr  error

	lookPath = exec.LookPath
	getenv   = os.Getenv
)

// Write writes s to the clipboard.
func Write(s string) error {
	tool, err := getTool()
	if err != nil {
		return err
	}

	cmd := exec.Command(tool.cmd, tool.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := in.Write([]byte(s)); err != nil {
		return err
	}
	if err := in.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}

// Available reports whether a clipboard utility exists on this system.
func Available() bool {
	_, err := getTool()
	return err == nil
}

func getTool() (*copyTool, error) {
	toolOnce.Do(func() {
		toolImpl, toolErr = selectTool()
		if toolErr != nil {
			toolErr = errors.Join(ErrUnavailable, toolErr)
		}
	})
	return toolImpl, toolErr
}
