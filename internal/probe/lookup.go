package probe

import (
	"context"
	"sort"
	"strconv"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/girste/hostprobe/internal/platform"
)

// Named facts answered by Lookup besides the text-backed platform facts.
const (
	FactOS             = "os"
	FactArch           = "arch"
	FactWSL            = "wsl"
	FactKernel         = "kernel"
	FactWindowsEdition = "windows_edition"
	FactCPU            = "cpu"
	FactGPU            = "gpu"
	FactPublicIP       = "public_ip"
)

// FactNames lists every name Lookup accepts, sorted.
func FactNames() []string {
	names := []string{
		FactOS, FactArch, FactWSL, FactKernel, FactWindowsEdition,
		FactCPU, FactGPU, FactPublicIP,
	}
	for _, f := range platform.Names() {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Lookup answers one named fact as text.
func (p *Probe) Lookup(ctx context.Context, name string) (string, error) {
	switch name {
	case FactOS:
		return p.os.String(), nil
	case FactArch:
		return p.arch.String(), nil
	case FactWSL:
		return strconv.FormatBool(p.IsWSL()), nil
	case FactKernel:
		return p.Kernel()
	case FactWindowsEdition:
		w, err := p.WindowsEdition()
		if err != nil {
			return "", err
		}
		if w.DisplayVersion == "" {
			return w.Edition, nil
		}
		return w.Edition + " " + w.DisplayVersion, nil
	case FactCPU:
		proc, err := p.CPU()
		if err != nil {
			return "", err
		}
		return proc.Model, nil
	case FactGPU:
		card, ok, err := p.FirstGPU()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", nil
		}
		return card.Model, nil
	case FactPublicIP:
		return p.PublicIP(ctx)
	case string(platform.FactHostname):
		return p.Hostname()
	}

	if _, ok := platform.Query(platform.Fact(name)); ok {
		return p.facts.Get(platform.Fact(name))
	}
	return "", errors.New("unknown fact %q", name)
}
