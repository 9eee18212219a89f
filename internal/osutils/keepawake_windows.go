//go:build windows

package osutils

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32.NewProc("SetThreadExecutionState")
)

const (
	ES_CONTINUOUS       = 0x80000000
	ES_SYSTEM_REQUIRED  = 0x00000001
	ES_DISPLAY_REQUIRED = 0x00000002
)

// KeepAwake holds the machine awake while the host is serving.
type KeepAwake struct {
	logger golog.Logger
}

// StartKeepAwake inhibits display and idle sleep until Stop is called.
func StartKeepAwake(logger golog.Logger) (*KeepAwake, error) {
	ret, _, _ := procSetThreadExecutionState.Call(ES_CONTINUOUS | ES_SYSTEM_REQUIRED | ES_DISPLAY_REQUIRED)
	if ret == 0 {
		return nil, errors.New("setting thread execution state failed")
	}
	logger.Infow("holding system awake")
	return &KeepAwake{logger: logger}, nil
}

// Stop lets the machine sleep again.
func (k *KeepAwake) Stop() error {
	ret, _, _ := procSetThreadExecutionState.Call(ES_CONTINUOUS)
	if ret == 0 {
		return errors.New("clearing thread execution state failed")
	}
	k.logger.Debugw("released sleep inhibition")
	return nil
}
