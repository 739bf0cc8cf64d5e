// Package provider defines the capabilities hostprobe needs from the
// operating system and the outside world, together with their real
// implementations. Each capability returns a value or an error wrapping
// errors.ErrProviderUnavailable when the platform cannot serve it.
package provider

import "context"

// Hive names a registry root key.
type Hive string

const (
	LocalMachine Hive = "HKLM"
	CurrentUser  Hive = "HKCU"
)

// Registry reads string values from the Windows registry.
type Registry interface {
	GetString(hive Hive, subkey, value string) (string, error)
}

// CPUID identifies the processor through the CPUID instruction.
type CPUID interface {
	BrandString() (string, error)
	LogicalCores() (uint32, error)
}

// Adapter is one graphics adapter as reported by the enumeration API.
type Adapter struct {
	Name    string `json:"name"`
	Vendor  string `json:"vendor,omitempty"`
	Driver  string `json:"driver"`
	Address string `json:"address,omitempty"`
}

// GPU enumerates graphics adapters. Zero adapters is not an error.
type GPU interface {
	Adapters() ([]Adapter, error)
}

// PublicIP looks up the address the host is seen from on the internet.
type PublicIP interface {
	Lookup(ctx context.Context) (string, error)
}

// HostInfo reports kernel level host details.
type HostInfo interface {
	KernelVersion() (string, error)
}
