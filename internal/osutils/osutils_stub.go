//go:build !windows

package osutils

import "github.com/edaniels/golog"

// IsAdmin reports false; elevation only matters for the Windows firewall
// path.
func IsAdmin() bool {
	return false
}

// EnsureFirewallRule does nothing; firewall management is Windows-only.
func EnsureFirewallRule(logger golog.Logger, ports ...int) error {
	logger.Debugw("firewall rule management is windows-only")
	return nil
}
