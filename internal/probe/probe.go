// Package probe assembles a host Profile from the platform classifier, the
// text-backed facts and the external providers.
package probe

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/girste/hostprobe/internal/platform"
	"github.com/girste/hostprobe/internal/provider"
	"github.com/girste/hostprobe/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry location of the Windows edition
const (
	windowsVersionKey   = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	windowsEditionValue = "EditionID"
	windowsDisplayValue = "DisplayVersion"
)

// Providers bundles the external capabilities. A nil provider is reported
// as unavailable.
type Providers struct {
	Registry provider.Registry
	CPUID    provider.CPUID
	GPU      provider.GPU
	PublicIP provider.PublicIP
	HostInfo provider.HostInfo
}

// DefaultProviders wires the real providers for this host.
func DefaultProviders(root string, ip provider.PublicIPOptions) Providers {
	return Providers{
		Registry: provider.NewRegistry(),
		CPUID:    provider.NewCPUID(),
		GPU:      provider.NewGPU(root),
		PublicIP: provider.NewPublicIP(ip),
		HostInfo: provider.NewHostInfo(),
	}
}

// Probe answers fact queries about the host. It holds no per-query state.
type Probe struct {
	providers    Providers
	hasProviders bool
	facts        platform.Facts
	os           platform.OperatingSystem
	arch         platform.Architecture
	logger       *zap.Logger
}

// Option configures a Probe.
type Option func(*Probe)

// WithProviders replaces the external providers.
func WithProviders(p Providers) Option {
	return func(pr *Probe) {
		pr.providers = p
		pr.hasProviders = true
	}
}

// WithFacts sets the root the text-backed facts are read beneath.
func WithFacts(f platform.Facts) Option {
	return func(pr *Probe) { pr.facts = f }
}

// WithPlatform overrides the runtime classification.
func WithPlatform(osys platform.OperatingSystem, arch platform.Architecture) Option {
	return func(pr *Probe) {
		pr.os = osys
		pr.arch = arch
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(pr *Probe) { pr.logger = l }
}

// New returns a Probe for the running host.
func New(opts ...Option) *Probe {
	pr := &Probe{
		facts:  platform.NewFacts(),
		os:     platform.CurrentOS(),
		arch:   platform.CurrentArch(),
		logger: util.Component("probe"),
	}
	for _, opt := range opts {
		opt(pr)
	}
	if !pr.hasProviders {
		pr.providers = DefaultProviders(pr.facts.Root, provider.PublicIPOptions{Logger: pr.logger})
	}
	return pr
}

func unavailable(what string) error {
	return fmt.Errorf("%w: no %s provider", errors.ErrProviderUnavailable, what)
}

func (p *Probe) OS() platform.OperatingSystem { return p.os }

func (p *Probe) Arch() platform.Architecture { return p.arch }

// Fact reads a single text-backed fact.
func (p *Probe) Fact(f platform.Fact) (string, error) {
	return p.facts.Get(f)
}

// IsWSL reports whether the WSL interop marker exists.
func (p *Probe) IsWSL() bool {
	return p.facts.IsSubsystem()
}

// Distro reads every os-release fact. The returned Distro carries whatever
// could be read; err joins the failures.
func (p *Probe) Distro() (*Distro, error) {
	d := &Distro{}
	var errs []error
	for _, item := range []struct {
		fact platform.Fact
		dst  *string
	}{
		{platform.FactDistroName, &d.Name},
		{platform.FactDistroID, &d.ID},
		{platform.FactDistroVersion, &d.Version},
		{platform.FactCPEName, &d.CPEName},
		{platform.FactPlatformID, &d.PlatformID},
	} {
		v, err := p.facts.Get(item.fact)
		if err != nil {
			errs = append(errs, &FactError{Fact: string(item.fact), Err: err})
			continue
		}
		*item.dst = v
	}
	return d, errors.Join(errs...)
}

// Hostname reads /etc/hostname. Hosts without that file (macOS, the BSDs)
// fall back to the kernel's answer.
func (p *Probe) Hostname() (string, error) {
	name, err := p.facts.Hostname()
	if err == nil || !errors.Is(err, errors.ErrIO) || p.os == platform.Linux {
		return name, err
	}
	if h, herr := os.Hostname(); herr == nil && h != "" {
		return h, nil
	}
	return "", err
}

func (p *Probe) Kernel() (string, error) {
	if p.providers.HostInfo == nil {
		return "", unavailable("host info")
	}
	return p.providers.HostInfo.KernelVersion()
}

// WindowsEdition reads EditionID (required) and DisplayVersion (optional).
func (p *Probe) WindowsEdition() (*WindowsEdition, error) {
	if p.providers.Registry == nil {
		return nil, unavailable("registry")
	}
	edition, err := p.providers.Registry.GetString(provider.LocalMachine, windowsVersionKey, windowsEditionValue)
	if err != nil {
		return nil, err
	}
	w := &WindowsEdition{Edition: edition}
	if display, err := p.providers.Registry.GetString(provider.LocalMachine, windowsVersionKey, windowsDisplayValue); err == nil {
		w.DisplayVersion = display
	}
	return w, nil
}

// CPU identifies the processor through CPUID on x86 and through
// /proc/cpuinfo elsewhere or when CPUID is unavailable.
func (p *Probe) CPU() (*Processor, error) {
	var cpuidErr error
	if p.arch.HasCPUID() {
		proc, err := p.cpuFromInstruction()
		if err == nil {
			return proc, nil
		}
		cpuidErr = err
		p.logger.Debug("cpuid unavailable, falling back to cpuinfo", zap.Error(err))
	}

	model, err := p.facts.CPUModel()
	if err != nil {
		return nil, errors.Join(cpuidErr, err)
	}
	cores, err := p.facts.CPUCores()
	if err != nil {
		return nil, errors.Join(cpuidErr, err)
	}
	return &Processor{Model: model, Cores: cores, Source: "cpuinfo"}, nil
}

func (p *Probe) cpuFromInstruction() (*Processor, error) {
	if p.providers.CPUID == nil {
		return nil, unavailable("cpuid")
	}
	brand, err := p.providers.CPUID.BrandString()
	if err != nil {
		return nil, err
	}
	cores, err := p.providers.CPUID.LogicalCores()
	if err != nil {
		return nil, err
	}
	return &Processor{Model: brand, Cores: cores, Source: "cpuid"}, nil
}

// GPU lists every graphics adapter. An empty list is not an error.
func (p *Probe) GPU() ([]GraphicsCard, error) {
	if p.providers.GPU == nil {
		return nil, unavailable("gpu")
	}
	adapters, err := p.providers.GPU.Adapters()
	if err != nil {
		return nil, err
	}
	cards := make([]GraphicsCard, 0, len(adapters))
	for _, a := range adapters {
		cards = append(cards, GraphicsCard{Model: a.Name, Vendor: a.Vendor, DriverVersion: a.Driver})
	}
	return cards, nil
}

// FirstGPU returns the first adapter; ok is false when there is none.
func (p *Probe) FirstGPU() (card GraphicsCard, ok bool, err error) {
	cards, err := p.GPU()
	if err != nil || len(cards) == 0 {
		return GraphicsCard{}, false, err
	}
	return cards[0], true, nil
}

func (p *Probe) PublicIP(ctx context.Context) (string, error) {
	if p.providers.PublicIP == nil {
		return "", unavailable("public ip")
	}
	return p.providers.PublicIP.Lookup(ctx)
}

// FactError ties a failure to the fact it prevented.
type FactError struct {
	Fact string
	Err  error
}

func (e *FactError) Error() string { return e.Fact + ": " + e.Err.Error() }

func (e *FactError) Unwrap() error { return e.Err }

// Collect gathers the selected groups concurrently. Failures never abort the
// run: each is recorded in Profile.Errors and the fact is left empty.
func (p *Probe) Collect(ctx context.Context, sel Selection) *Profile {
	start := time.Now()
	profile := &Profile{
		ID:        uuid.NewString(),
		Timestamp: start.UTC(),
		OS:        p.os,
		Arch:      p.arch,
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	fail := func(fact string, err error) {
		p.logger.Warn("fact unavailable", zap.String("fact", fact), zap.Error(err))
		mu.Lock()
		defer mu.Unlock()
		if profile.Errors == nil {
			profile.Errors = map[string]string{}
		}
		profile.Errors[fact] = err.Error()
	}
	run := func(g Group, fn func()) {
		if !sel.Has(g) || !p.applies(g) {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(GroupDistro, func() {
		d, err := p.Distro()
		var fe *FactError
		for _, e := range unwrapJoined(err) {
			if errors.As(e, &fe) {
				fail(fe.Fact, fe.Err)
			}
		}
		if *d != (Distro{}) {
			mu.Lock()
			profile.Distro = d
			mu.Unlock()
		}
	})
	run(GroupHostname, func() {
		h, err := p.Hostname()
		if err != nil {
			fail(string(GroupHostname), err)
			return
		}
		mu.Lock()
		profile.Hostname = h
		mu.Unlock()
	})
	run(GroupKernel, func() {
		k, err := p.Kernel()
		if err != nil {
			fail(string(GroupKernel), err)
			return
		}
		mu.Lock()
		profile.Kernel = k
		mu.Unlock()
	})
	run(GroupWSL, func() {
		wsl := p.IsWSL()
		mu.Lock()
		profile.IsWSL = &wsl
		mu.Unlock()
	})
	run(GroupWindowsEdition, func() {
		w, err := p.WindowsEdition()
		if err != nil {
			fail(string(GroupWindowsEdition), err)
			return
		}
		mu.Lock()
		profile.WindowsEdition = w
		mu.Unlock()
	})
	run(GroupCPU, func() {
		proc, err := p.CPU()
		if err != nil {
			fail(string(GroupCPU), err)
			return
		}
		mu.Lock()
		profile.Processor = proc
		mu.Unlock()
	})
	run(GroupGPU, func() {
		cards, err := p.GPU()
		if err != nil {
			fail(string(GroupGPU), err)
			return
		}
		mu.Lock()
		profile.GraphicsCards = cards
		mu.Unlock()
	})
	run(GroupPublicIP, func() {
		ip, err := p.PublicIP(ctx)
		if err != nil {
			fail(string(GroupPublicIP), err)
			return
		}
		mu.Lock()
		profile.PublicIP = ip
		mu.Unlock()
	})

	wg.Wait()
	p.logger.Info("probe completed",
		zap.String("id", profile.ID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("errors", len(profile.Errors)))
	return profile
}

// applies filters groups that have no meaning on the probed OS.
func (p *Probe) applies(g Group) bool {
	switch g {
	case GroupDistro, GroupWSL:
		return p.os == platform.Linux
	case GroupWindowsEdition:
		return p.os == platform.Windows
	default:
		return true
	}
}

func unwrapJoined(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// Masked returns a copy with the hostname and public address obscured.
func (pr *Profile) Masked() *Profile {
	out := *pr
	if out.Hostname != "" {
		out.Hostname = util.MaskHostname(out.Hostname)
	}
	if out.PublicIP != "" {
		out.PublicIP = util.MaskIP(out.PublicIP)
	}
	return &out
}
