// Package platform maps raw platform strings onto closed operating-system
// and architecture enumerations and assembles host facts from well-known
// files through the field extractor.
package platform

import "runtime"

// OperatingSystem is the canonical operating system identity.
type OperatingSystem int

const (
	// OSUnknown is returned for any token not in the classification table
	OSUnknown OperatingSystem = iota
	Linux
	Android
	FreeBSD
	DragonFlyBSD
	NetBSD
	OpenBSD
	Solaris
	MacOS
	Windows
)

// osTokens accepts both the canonical lowercase names and the Go runtime's
// GOOS spellings.
var osTokens = map[string]OperatingSystem{
	"linux":     Linux,
	"android":   Android,
	"freebsd":   FreeBSD,
	"dragonfly": DragonFlyBSD,
	"netbsd":    NetBSD,
	"openbsd":   OpenBSD,
	"solaris":   Solaris,
	"illumos":   Solaris,
	"macos":     MacOS,
	"darwin":    MacOS,
	"windows":   Windows,
}

// ClassifyOS maps raw onto an OperatingSystem. It never fails: unrecognized
// input, including different casing, yields OSUnknown.
func ClassifyOS(raw string) OperatingSystem {
	if os, ok := osTokens[raw]; ok {
		return os
	}
	return OSUnknown
}

// CurrentOS classifies the operating system this binary was built for.
func CurrentOS() OperatingSystem {
	return ClassifyOS(runtime.GOOS)
}

// String returns the variant name
func (o OperatingSystem) String() string {
	switch o {
	case Linux:
		return "Linux"
	case Android:
		return "Android"
	case FreeBSD:
		return "FreeBSD"
	case DragonFlyBSD:
		return "DragonFlyBSD"
	case NetBSD:
		return "NetBSD"
	case OpenBSD:
		return "OpenBSD"
	case Solaris:
		return "Solaris"
	case MacOS:
		return "MacOS"
	case Windows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// MarshalText renders the variant name in JSON and YAML output.
func (o OperatingSystem) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// IsUnix reports whether o is one of the Unix-like systems whose facts come
// from text files rather than the registry.
func (o OperatingSystem) IsUnix() bool {
	switch o {
	case Linux, Android, FreeBSD, DragonFlyBSD, NetBSD, OpenBSD, Solaris, MacOS:
		return true
	default:
		return false
	}
}
