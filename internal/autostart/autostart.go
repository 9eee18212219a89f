// Package autostart registers the host as a login item.
package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"text/template"

	"github.com/pkg/errors"
)

const plistName = "com.pointz.host.plist"

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.pointz.host</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
        <string>-tray</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>`

// Enable enables start on login
func Enable() error {
	switch runtime.GOOS {
	case "darwin":
		return enableMac()
	case "windows":
		return enableWindows()
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable disables start on login
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return disableMac()
	case "windows":
		return disableWindows()
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if start on login is enabled
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return isEnabledMac()
	case "windows":
		return isEnabledWindows()
	default:
		return false
	}
}

// macOS implementation
func enableMac() error {
	execPath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "getting executable path")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	launchAgentsDir := filepath.Join(home, "Library", "LaunchAgents")
	if err := os.MkdirAll(launchAgentsDir, 0755); err != nil {
		return err
	}

	plistPath := filepath.Join(launchAgentsDir, plistName)

	tmpl, err := template.New("plist").Parse(macLaunchAgentPlist)
	if err != nil {
		return err
	}

	f, err := os.Create(plistPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, struct{ ExecutablePath string }{execPath})
}

func disableMac() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	plistPath := filepath.Join(home, "Library", "LaunchAgents", plistName)
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func isEnabledMac() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	plistPath := filepath.Join(home, "Library", "LaunchAgents", plistName)
	_, err = os.Stat(plistPath)
	return err == nil
}

// Windows implementation (stub - requires golang.org/x/sys/windows/registry)
func enableWindows() error {
	// Note: Full implementation requires registry access
	// For now, provide instructions
	return errors.New("windows start on login not yet implemented; add the executable to the shell:startup folder manually")
}

func disableWindows() error {
	return errors.New("windows start on login not yet implemented")
}

func isEnabledWindows() bool {
	return false
}
