package util

import (
	"net"
	"strings"
)

// MaskIP keeps the network half of an address and hides the host half.
func MaskIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "***"
	}

	if v4 := parsed.To4(); v4 != nil {
		parts := strings.Split(v4.String(), ".")
		return parts[0] + "." + parts[1] + ".***.***"
	}

	groups := strings.Split(parsed.String(), ":")
	return groups[0] + ":***"
}

// MaskHostname hides all but the first two characters of a hostname.
func MaskHostname(hostname string) string {
	switch len(hostname) {
	case 0:
		return "host-****"
	case 1:
		return "host-" + hostname + "***"
	default:
		return "host-" + hostname[:2] + "**"
	}
}
