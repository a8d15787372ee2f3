//go:build linux

package clipboard

import "errors"

func selectTool() (*copyTool, error) {
	// Prefer wl-clipboard when running under Wayland.
	if getenv("WAYLAND_DISPLAY") != "" {
		if _, err := lookPath("wl-copy"); err == nil {
			return &copyTool{cmd: "wl-copy"}, nil
		}
	}

	if _, err := lookPath("xclip"); err == nil {
		return &copyTool{cmd: "xclip", args: []string{"-in", "-selection", "clipboard"}}, nil
	}

	if _, err := lookPath("xsel"); err == nil {
		return &copyTool{cmd: "xsel", args: []string{"--input", "--clipboard"}}, nil
	}

	return nil, errors.New("no clipboard utility found (install wl-clipboard, xclip, or xsel)")
}
