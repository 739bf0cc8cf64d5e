package probe

import (
	"time"

	"github.com/girste/hostprobe/internal/platform"
)

// Group names one collectable part of a Profile.
type Group string

const (
	GroupOS             Group = "os"
	GroupDistro         Group = "distro"
	GroupHostname       Group = "hostname"
	GroupKernel         Group = "kernel"
	GroupWSL            Group = "wsl"
	GroupWindowsEdition Group = "windows_edition"
	GroupCPU            Group = "cpu"
	GroupGPU            Group = "gpu"
	GroupPublicIP       Group = "public_ip"
)

// AllGroups lists every group in report order.
var AllGroups = []Group{
	GroupOS, GroupDistro, GroupHostname, GroupKernel, GroupWSL,
	GroupWindowsEdition, GroupCPU, GroupGPU, GroupPublicIP,
}

// IsValidGroup reports whether name is a known group.
func IsValidGroup(name string) bool {
	for _, g := range AllGroups {
		if string(g) == name {
			return true
		}
	}
	return false
}

// Selection is the set of groups Collect gathers.
type Selection map[Group]bool

// DefaultSelection gathers everything except the network lookup.
func DefaultSelection() Selection {
	sel := Selection{}
	for _, g := range AllGroups {
		sel[g] = g != GroupPublicIP
	}
	return sel
}

// Has reports whether g is selected.
func (s Selection) Has(g Group) bool {
	return s[g]
}

// Distro holds os-release metadata. Empty fields could not be determined.
type Distro struct {
	Name       string `json:"name,omitempty"`
	ID         string `json:"id,omitempty"`
	Version    string `json:"version,omitempty"`
	CPEName    string `json:"cpe_name,omitempty"`
	PlatformID string `json:"platform_id,omitempty"`
}

// WindowsEdition holds the edition read from the registry.
type WindowsEdition struct {
	Edition        string `json:"edition"`
	DisplayVersion string `json:"display_version,omitempty"`
}

// Processor is the CPU model and logical core count.
type Processor struct {
	Model  string `json:"model"`
	Cores  uint32 `json:"cores"`
	Source string `json:"source"`
}

// GraphicsCard is one GPU adapter.
type GraphicsCard struct {
	Model         string `json:"model"`
	Vendor        string `json:"vendor,omitempty"`
	DriverVersion string `json:"driver_version"`
}

// Profile is one probe run over the host.
type Profile struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	OS   platform.OperatingSystem `json:"os"`
	Arch platform.Architecture    `json:"arch"`

	Distro         *Distro         `json:"distro,omitempty"`
	Hostname       string          `json:"hostname,omitempty"`
	Kernel         string          `json:"kernel,omitempty"`
	IsWSL          *bool           `json:"is_wsl,omitempty"`
	WindowsEdition *WindowsEdition `json:"windows_edition,omitempty"`
	Processor      *Processor      `json:"processor,omitempty"`
	GraphicsCards  []GraphicsCard  `json:"graphics_cards,omitempty"`
	PublicIP       string          `json:"public_ip,omitempty"`

	// Errors maps a fact name to why it could not be determined.
	Errors map[string]string `json:"errors,omitempty"`
}
