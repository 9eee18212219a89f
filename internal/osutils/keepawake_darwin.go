//go:build darwin

package osutils

import (
	"os/exec"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// KeepAwake holds the machine awake while the host is serving.
type KeepAwake struct {
	cmd    *exec.Cmd
	logger golog.Logger
}

// StartKeepAwake spawns caffeinate to inhibit display and idle sleep until
// Stop is called.
func StartKeepAwake(logger golog.Logger) (*KeepAwake, error) {
	cmd := exec.Command("caffeinate", "-d", "-i")
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "starting caffeinate")
	}
	logger.Infow("holding system awake", "pid", cmd.Process.Pid)
	return &KeepAwake{cmd: cmd, logger: logger}, nil
}

// Stop lets the machine sleep again.
func (k *KeepAwake) Stop() error {
	if err := k.cmd.Process.Kill(); err != nil {
		return errors.Wrap(err, "stopping caffeinate")
	}
	k.cmd.Wait()
	k.logger.Debugw("released sleep inhibition")
	return nil
}
