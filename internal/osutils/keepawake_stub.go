//go:build !darwin && !windows

package osutils

import "github.com/edaniels/golog"

// KeepAwake holds the machine awake while the host is serving. Sleep
// inhibition has no implementation on this platform.
type KeepAwake struct{}

// StartKeepAwake is a no-op on this platform.
func StartKeepAwake(logger golog.Logger) (*KeepAwake, error) {
	logger.Debugw("sleep inhibition is not supported on this platform")
	return &KeepAwake{}, nil
}

// Stop is a no-op on this platform.
func (k *KeepAwake) Stop() error {
	return nil
}
