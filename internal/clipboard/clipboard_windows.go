//go:build windows

package clipboard

import "errors"

func selectTool() (*copyTool, error) {
	// clip.exe reads the payload from stdin, same shape as the Unix tools.
	if _, err := lookPath("clip.exe"); err == nil {
		return &copyTool{cmd: "clip.exe"}, nil
	}
	if _, err := lookPath("clip"); err == nil {
		return &copyTool{cmd: "clip"}, nil
	}
	return nil, errors.New("missing clip.exe")
}
