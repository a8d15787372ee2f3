//go:build !darwin && !linux && !windows

package clipboard

import "errors"

func selectTool() (*copyTool, error) {
	return nil, errors.New("unsupported platform")
}
