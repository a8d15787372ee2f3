//go:build darwin

package clipboard

import "errors"

func selectTool() (*copyTool, error) {
	if _, err := lookPath("pbcopy"); err != nil {
		return nil, errors.New("missing pbcopy")
	}
	return &copyTool{cmd: "pbcopy"}, nil
}
