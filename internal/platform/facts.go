package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/girste/hostprobe/internal/extract"
	"github.com/girste/hostprobe/internal/system"
)

// Well-known source locations
const (
	OSReleasePath  = "/etc/os-release"
	CPUInfoPath    = "/proc/cpuinfo"
	HostnamePath   = "/etc/hostname"
	WSLInteropPath = "/proc/sys/fs/binfmt_misc/WSLInterop"
)

// Fact names a host fact backed by a single field query.
type Fact string

const (
	FactDistroName    Fact = "distro_name"
	FactDistroID      Fact = "distro_id"
	FactDistroVersion Fact = "distro_version"
	FactCPEName       Fact = "cpe_name"
	FactPlatformID    Fact = "platform_id"
	FactHostname      Fact = "hostname"
	FactCPUModel      Fact = "cpu_model"
	FactCPUCores      Fact = "cpu_cores"
)

// queries holds every text-backed fact. Paths are relative to the host root.
// ID carries its "=" in the key so it cannot match ID_LIKE.
var queries = map[Fact]extract.FieldQuery{
	FactDistroName:    {Path: OSReleasePath, Key: "PRETTY_NAME", Delimiter: '='},
	FactDistroID:      {Path: OSReleasePath, Key: "ID=", Delimiter: extract.NoDelimiter},
	FactDistroVersion: {Path: OSReleasePath, Key: "VERSION_ID", Delimiter: '='},
	FactCPEName:       {Path: OSReleasePath, Key: "CPE_NAME", Delimiter: '='},
	FactPlatformID:    {Path: OSReleasePath, Key: "PLATFORM_ID", Delimiter: '='},
	FactHostname:      {Path: HostnamePath, Key: "", Delimiter: extract.NoDelimiter},
	FactCPUModel:      {Path: CPUInfoPath, Key: "model name", Delimiter: ':'},
	FactCPUCores:      {Path: CPUInfoPath, Key: "siblings", Delimiter: ':'},
}

// factOrder is the stable listing order for Facts.Names.
var factOrder = []Fact{
	FactDistroName, FactDistroID, FactDistroVersion, FactCPEName,
	FactPlatformID, FactHostname, FactCPUModel, FactCPUCores,
}

// Query returns the field query behind fact.
func Query(fact Fact) (extract.FieldQuery, bool) {
	q, ok := queries[fact]
	return q, ok
}

// Names lists every text-backed fact.
func Names() []Fact {
	out := make([]Fact, len(factOrder))
	copy(out, factOrder)
	return out
}

// Facts resolves text-backed facts beneath Root. Every call reads its
// source afresh.
type Facts struct {
	Root string
}

// NewFacts returns Facts rooted at the detected host root.
func NewFacts() Facts {
	return Facts{Root: system.HostRoot()}
}

// Path resolves a host path beneath the root.
func (f Facts) Path(path string) string {
	return system.JoinRoot(f.Root, path)
}

// Get extracts fact and trims surrounding whitespace from the value.
func (f Facts) Get(fact Fact) (string, error) {
	q, ok := queries[fact]
	if !ok {
		return "", errors.New("unknown fact %q", fact)
	}
	q.Path = f.Path(q.Path)

	value, err := extract.Extract(q)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// DistroName returns the human readable distribution name (PRETTY_NAME).
func (f Facts) DistroName() (string, error) { return f.Get(FactDistroName) }

// DistroID returns the machine readable distribution id (ID).
func (f Facts) DistroID() (string, error) { return f.Get(FactDistroID) }

// DistroVersion returns VERSION_ID.
func (f Facts) DistroVersion() (string, error) { return f.Get(FactDistroVersion) }

func (f Facts) CPEName() (string, error) { return f.Get(FactCPEName) }

func (f Facts) PlatformID() (string, error) { return f.Get(FactPlatformID) }

func (f Facts) Hostname() (string, error) { return f.Get(FactHostname) }

// CPUModel returns the first "model name" entry of /proc/cpuinfo.
func (f Facts) CPUModel() (string, error) { return f.Get(FactCPUModel) }

// CPUCores returns the logical core count of the first CPU package.
func (f Facts) CPUCores() (uint32, error) {
	raw, err := f.Get(FactCPUCores)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: cpu core count %q: %v", errors.ErrParse, raw, err)
	}
	return uint32(n), nil
}

// IsSubsystem reports whether the host is a Linux user space running under
// WSL. It is a presence check on the interop marker and never fails.
func (f Facts) IsSubsystem() bool {
	return system.FileExists(f.Path(WSLInteropPath))
}

// IsSubsystem checks the WSL marker beneath the detected host root.
func IsSubsystem() bool {
	return NewFacts().IsSubsystem()
}
