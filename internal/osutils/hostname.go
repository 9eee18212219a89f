// Package osutils wraps the small OS services the host needs: machine
// identity for discovery and the status page, firewall management on
// Windows, and sleep inhibition while serving.
package osutils

import (
	"net"
	"os"
)

// UnknownHostname is reported when the OS will not give us a name.
const UnknownHostname = "Unknown"

// Hostname returns the machine's hostname, or UnknownHostname when the OS
// call fails.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return UnknownHostname
	}
	return name
}

// LocalIP returns the first usable non-loopback IPv4 address. Clients reach
// the host over this address, so interfaces that are down are skipped.
func LocalIP() (string, bool) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip = ip.To4(); ip == nil {
				continue
			}
			return ip.String(), true
		}
	}
	return "", false
}
