//go:build !darwin && !windows && !linux

package input

import (
	"runtime"

	"github.com/pkg/errors"
)

// NewSimulator reports that no input backend exists for this platform.
func NewSimulator(session *Session) (Simulator, error) {
	return nil, errors.Errorf("input simulation is not supported on %s", runtime.GOOS)
}
