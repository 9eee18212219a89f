//go:build windows

package osutils

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// firewallRuleName labels the inbound rule that opens the host's UDP ports.
const firewallRuleName = "pointZ Host"

// IsAdmin reports whether the current process has administrative privileges.
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}

// EnsureFirewallRule opens the given UDP ports for inbound traffic. An
// existing matching rule is left alone; otherwise the rule is replaced via
// PowerShell, elevating through UAC when the process is not already admin.
func EnsureFirewallRule(logger golog.Logger, ports ...int) error {
	logger.Infow("checking firewall rule", "rule", firewallRuleName, "ports", ports)

	checkCmd := exec.Command("netsh", "advfirewall", "firewall", "show", "rule", "name="+firewallRuleName)
	output, err := checkCmd.CombinedOutput()
	outputStr := string(output)

	if err == nil && strings.Contains(outputStr, firewallRuleName) {
		allPresent := strings.Contains(outputStr, "Allow")
		for _, port := range ports {
			if !strings.Contains(outputStr, strconv.Itoa(port)) {
				allPresent = false
				break
			}
		}
		if allPresent {
			logger.Infow("firewall rule already present", "rule", firewallRuleName)
			return nil
		}
		logger.Infow("firewall rule outdated, replacing", "rule", firewallRuleName)
	} else {
		logger.Infow("firewall rule missing, creating", "rule", firewallRuleName)
	}

	portList := make([]string, len(ports))
	for i, port := range ports {
		portList[i] = strconv.Itoa(port)
	}
	psCommand := fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%s' -ErrorAction SilentlyContinue; New-NetFirewallRule -DisplayName '%s' -Direction Inbound -LocalPort %s -Protocol UDP -Action Allow -Profile Any",
		firewallRuleName, firewallRuleName, strings.Join(portList, ","),
	)

	if !IsAdmin() {
		logger.Infow("requesting UAC elevation for firewall rule")

		verbPtr, _ := syscall.UTF16PtrFromString("runas")
		exePtr, _ := syscall.UTF16PtrFromString("powershell.exe")
		argPtr, _ := syscall.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", psCommand))

		var showCmd int32 = 0 // SW_HIDE
		if err := windows.ShellExecute(0, verbPtr, exePtr, argPtr, nil, showCmd); err != nil {
			return errors.Wrap(err, "launching elevated powershell")
		}
		return nil
	}

	cmd := exec.Command("powershell", "-NoProfile", "-Command", psCommand)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "creating firewall rule (output: %s)", string(output))
	}
	logger.Infow("firewall rule applied", "rule", firewallRuleName, "ports", ports)
	return nil
}
