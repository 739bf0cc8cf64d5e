package probe

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/girste/hostprobe/internal/platform"
	"github.com/girste/hostprobe/internal/provider"
	"go.uber.org/zap"
)

type fakeRegistry map[string]string

func (r fakeRegistry) GetString(hive provider.Hive, subkey, value string) (string, error) {
	v, ok := r[string(hive)+`\`+subkey+`\`+value]
	if !ok {
		return "", errors.ErrFieldNotFound
	}
	return v, nil
}

type fakeCPUID struct {
	brand string
	cores uint32
	err   error
}

func (c fakeCPUID) BrandString() (string, error) { return c.brand, c.err }
func (c fakeCPUID) LogicalCores() (uint32, error) { return c.cores, c.err }

type fakeGPU struct {
	adapters []provider.Adapter
	err      error
}

func (g fakeGPU) Adapters() ([]provider.Adapter, error) { return g.adapters, g.err }

type fakePublicIP string

func (f fakePublicIP) Lookup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(f), nil
}

type fakeHostInfo string

func (f fakeHostInfo) KernelVersion() (string, error) { return string(f), nil }

const osRelease = `NAME="Fedora Linux"
ID_LIKE=""
ID=fedora
VERSION_ID=41
PLATFORM_ID="platform:f41"
PRETTY_NAME="Fedora Linux 41 (Workstation Edition)"
CPE_NAME="cpe:/o:fedoraproject:fedora:41"
`

const cpuInfo = `processor	: 0
model name	: Cortex-A76
siblings	: 4
`

func hostRoot(t *testing.T, files map[string]string) platform.Facts {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return platform.Facts{Root: root}
}

func linuxFixture(t *testing.T) platform.Facts {
	return hostRoot(t, map[string]string{
		platform.OSReleasePath:  osRelease,
		platform.CPUInfoPath:    cpuInfo,
		platform.HostnamePath:   "build-01\n",
		platform.WSLInteropPath: "enabled\n",
	})
}

func fullProviders() Providers {
	return Providers{
		Registry: fakeRegistry{
			`HKLM\` + windowsVersionKey + `\EditionID`:      "Professional",
			`HKLM\` + windowsVersionKey + `\DisplayVersion`: "24H2",
		},
		CPUID: fakeCPUID{brand: "Intel(R) Core(TM) i7-8650U CPU @ 1.90GHz", cores: 8},
		GPU: fakeGPU{adapters: []provider.Adapter{
			{Name: "TU117M", Vendor: "NVIDIA Corporation", Driver: "nvidia"},
			{Name: "UHD Graphics 620", Vendor: "Intel Corporation", Driver: "i915"},
		}},
		PublicIP: fakePublicIP("203.0.113.7"),
		HostInfo: fakeHostInfo("6.11.4-301.fc41.x86_64"),
	}
}

func newProbe(facts platform.Facts, p Providers, osys platform.OperatingSystem, arch platform.Architecture) *Probe {
	return New(
		WithProviders(p),
		WithFacts(facts),
		WithPlatform(osys, arch),
		WithLogger(zap.NewNop()),
	)
}

func TestDistro(t *testing.T) {
	p := newProbe(linuxFixture(t), fullProviders(), platform.Linux, platform.X86_64)

	d, err := p.Distro()
	if err != nil {
		t.Fatalf("Distro() error = %v", err)
	}
	want := Distro{
		Name:       "Fedora Linux 41 (Workstation Edition)",
		ID:         "fedora",
		Version:    "41",
		CPEName:    "cpe:/o:fedoraproject:fedora:41",
		PlatformID: "platform:f41",
	}
	if *d != want {
		t.Errorf("Distro() = %+v, want %+v", *d, want)
	}
}

func TestDistro_Partial(t *testing.T) {
	facts := hostRoot(t, map[string]string{platform.OSReleasePath: "ID=alpine\nVERSION_ID=3.20.3\n"})
	p := newProbe(facts, fullProviders(), platform.Linux, platform.X86_64)

	d, err := p.Distro()
	if d.ID != "alpine" || d.Version != "3.20.3" {
		t.Errorf("Distro() = %+v, want readable fields kept", *d)
	}
	if !errors.Is(err, errors.ErrFieldNotFound) {
		t.Fatalf("Distro() error = %v, want %v", err, errors.ErrFieldNotFound)
	}
	var fe *FactError
	if !errors.As(err, &fe) {
		t.Fatalf("Distro() error %T does not carry a FactError", err)
	}
	if got := len(unwrapJoined(err)); got != 3 {
		t.Errorf("joined errors = %d, want 3 (name, cpe, platform id)", got)
	}
}

func TestHostname(t *testing.T) {
	p := newProbe(linuxFixture(t), fullProviders(), platform.Linux, platform.X86_64)
	if got, err := p.Hostname(); err != nil || got != "build-01" {
		t.Errorf("Hostname() = %q, %v, want build-01", got, err)
	}

	empty := hostRoot(t, nil)
	linux := newProbe(empty, fullProviders(), platform.Linux, platform.X86_64)
	if _, err := linux.Hostname(); !errors.Is(err, errors.ErrIO) {
		t.Errorf("Linux Hostname() without /etc/hostname error = %v, want %v", err, errors.ErrIO)
	}

	mac := newProbe(empty, fullProviders(), platform.MacOS, platform.Aarch64)
	want, err := os.Hostname()
	if err != nil {
		t.Skip("kernel hostname unavailable")
	}
	if got, err := mac.Hostname(); err != nil || got != want {
		t.Errorf("macOS Hostname() = %q, %v, want fallback %q", got, err, want)
	}
}

func TestWindowsEdition(t *testing.T) {
	p := newProbe(hostRoot(t, nil), fullProviders(), platform.Windows, platform.X86_64)

	w, err := p.WindowsEdition()
	if err != nil {
		t.Fatalf("WindowsEdition() error = %v", err)
	}
	if w.Edition != "Professional" || w.DisplayVersion != "24H2" {
		t.Errorf("WindowsEdition() = %+v", *w)
	}

	p = newProbe(hostRoot(t, nil), Providers{Registry: fakeRegistry{}}, platform.Windows, platform.X86_64)
	if _, err := p.WindowsEdition(); !errors.Is(err, errors.ErrFieldNotFound) {
		t.Errorf("missing EditionID error = %v, want %v", err, errors.ErrFieldNotFound)
	}

	p = newProbe(hostRoot(t, nil), Providers{}, platform.Windows, platform.X86_64)
	if _, err := p.WindowsEdition(); !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("nil registry error = %v, want %v", err, errors.ErrProviderUnavailable)
	}
}

func TestCPU(t *testing.T) {
	facts := linuxFixture(t)
	failing := fullProviders()
	failing.CPUID = fakeCPUID{err: errors.ErrProviderUnavailable}

	tests := []struct {
		name       string
		arch       platform.Architecture
		providers  Providers
		wantModel  string
		wantCores  uint32
		wantSource string
	}{
		{"cpuid on x86_64", platform.X86_64, fullProviders(), "Intel(R) Core(TM) i7-8650U CPU @ 1.90GHz", 8, "cpuid"},
		{"cpuinfo on arm64", platform.Aarch64, fullProviders(), "Cortex-A76", 4, "cpuinfo"},
		{"fallback when cpuid fails", platform.X86, failing, "Cortex-A76", 4, "cpuinfo"},
		{"fallback without provider", platform.X86_64, Providers{}, "Cortex-A76", 4, "cpuinfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProbe(facts, tt.providers, platform.Linux, tt.arch)
			proc, err := p.CPU()
			if err != nil {
				t.Fatalf("CPU() error = %v", err)
			}
			if proc.Model != tt.wantModel || proc.Cores != tt.wantCores || proc.Source != tt.wantSource {
				t.Errorf("CPU() = %+v, want %s/%d/%s", *proc, tt.wantModel, tt.wantCores, tt.wantSource)
			}
		})
	}
}

func TestCPU_BothSourcesFail(t *testing.T) {
	p := newProbe(hostRoot(t, nil), Providers{CPUID: fakeCPUID{err: errors.ErrProviderUnavailable}}, platform.Linux, platform.X86_64)

	_, err := p.CPU()
	if !errors.Is(err, errors.ErrProviderUnavailable) || !errors.Is(err, errors.ErrIO) {
		t.Errorf("CPU() error = %v, want both cpuid and cpuinfo failures", err)
	}
}

func TestGPU(t *testing.T) {
	p := newProbe(hostRoot(t, nil), fullProviders(), platform.Linux, platform.X86_64)

	cards, err := p.GPU()
	if err != nil {
		t.Fatalf("GPU() error = %v", err)
	}
	if len(cards) != 2 || cards[1].DriverVersion != "i915" {
		t.Errorf("GPU() = %+v", cards)
	}

	card, ok, err := p.FirstGPU()
	if err != nil || !ok || card.Model != "TU117M" {
		t.Errorf("FirstGPU() = %+v, %v, %v", card, ok, err)
	}
}

func TestFirstGPU_None(t *testing.T) {
	p := newProbe(hostRoot(t, nil), Providers{GPU: fakeGPU{}}, platform.Linux, platform.X86_64)

	cards, err := p.GPU()
	if err != nil || len(cards) != 0 {
		t.Errorf("GPU() = %v, %v, want empty list", cards, err)
	}
	if _, ok, err := p.FirstGPU(); ok || err != nil {
		t.Errorf("FirstGPU() ok = %v, err = %v, want false, nil", ok, err)
	}
}

func TestPublicIP(t *testing.T) {
	p := newProbe(hostRoot(t, nil), fullProviders(), platform.Linux, platform.X86_64)
	if ip, err := p.PublicIP(context.Background()); err != nil || ip != "203.0.113.7" {
		t.Errorf("PublicIP() = %q, %v", ip, err)
	}

	p = newProbe(hostRoot(t, nil), Providers{}, platform.Linux, platform.X86_64)
	if _, err := p.PublicIP(context.Background()); !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("PublicIP() without provider error = %v", err)
	}
}

func TestCollect_Linux(t *testing.T) {
	p := newProbe(linuxFixture(t), fullProviders(), platform.Linux, platform.X86_64)

	sel := DefaultSelection()
	sel[GroupPublicIP] = true
	profile := p.Collect(context.Background(), sel)

	if profile.ID == "" || profile.Timestamp.IsZero() {
		t.Errorf("profile missing id or timestamp: %+v", profile)
	}
	if profile.OS != platform.Linux || profile.Arch != platform.X86_64 {
		t.Errorf("classification = %v/%v", profile.OS, profile.Arch)
	}
	if profile.Distro == nil || profile.Distro.ID != "fedora" {
		t.Errorf("Distro = %+v", profile.Distro)
	}
	if profile.Hostname != "build-01" || profile.Kernel != "6.11.4-301.fc41.x86_64" {
		t.Errorf("Hostname/Kernel = %q/%q", profile.Hostname, profile.Kernel)
	}
	if profile.IsWSL == nil || !*profile.IsWSL {
		t.Errorf("IsWSL = %v, want true", profile.IsWSL)
	}
	if profile.WindowsEdition != nil {
		t.Errorf("WindowsEdition collected on Linux: %+v", profile.WindowsEdition)
	}
	if profile.Processor == nil || profile.Processor.Source != "cpuid" {
		t.Errorf("Processor = %+v", profile.Processor)
	}
	if len(profile.GraphicsCards) != 2 || profile.PublicIP != "203.0.113.7" {
		t.Errorf("GraphicsCards/PublicIP = %+v/%q", profile.GraphicsCards, profile.PublicIP)
	}
	if len(profile.Errors) != 0 {
		t.Errorf("Errors = %v, want none", profile.Errors)
	}
}

func TestCollect_Windows(t *testing.T) {
	p := newProbe(hostRoot(t, nil), fullProviders(), platform.Windows, platform.Aarch64)

	profile := p.Collect(context.Background(), DefaultSelection())

	if profile.Distro != nil || profile.IsWSL != nil {
		t.Errorf("Linux-only groups collected on Windows: distro=%+v wsl=%v", profile.Distro, profile.IsWSL)
	}
	if profile.WindowsEdition == nil || profile.WindowsEdition.Edition != "Professional" {
		t.Errorf("WindowsEdition = %+v", profile.WindowsEdition)
	}
	if profile.PublicIP != "" {
		t.Errorf("PublicIP = %q, want skipped by default", profile.PublicIP)
	}
	// arm64 has no CPUID and the fixture root has no cpuinfo
	if _, ok := profile.Errors[string(GroupCPU)]; !ok {
		t.Errorf("Errors = %v, want cpu failure recorded", profile.Errors)
	}
}

func TestCollect_RecordsFailures(t *testing.T) {
	facts := hostRoot(t, map[string]string{platform.OSReleasePath: "ID=arch\n"})
	p := newProbe(facts, Providers{GPU: fakeGPU{err: stderrors.New("pci bus unreadable")}}, platform.Linux, platform.Aarch64)

	profile := p.Collect(context.Background(), DefaultSelection())

	if profile.Distro == nil || profile.Distro.ID != "arch" {
		t.Errorf("partial Distro = %+v, want ID kept", profile.Distro)
	}
	for _, fact := range []string{
		string(platform.FactDistroName),
		string(platform.FactDistroVersion),
		string(GroupHostname),
		string(GroupKernel),
		string(GroupCPU),
		string(GroupGPU),
	} {
		if _, ok := profile.Errors[fact]; !ok {
			t.Errorf("Errors missing %q: %v", fact, profile.Errors)
		}
	}
	if profile.Errors[string(GroupGPU)] != "pci bus unreadable" {
		t.Errorf("gpu error = %q", profile.Errors[string(GroupGPU)])
	}
}

func TestCollect_Selection(t *testing.T) {
	p := newProbe(linuxFixture(t), fullProviders(), platform.Linux, platform.X86_64)

	profile := p.Collect(context.Background(), Selection{GroupHostname: true})

	if profile.Hostname != "build-01" {
		t.Errorf("Hostname = %q", profile.Hostname)
	}
	if profile.Distro != nil || profile.Processor != nil || profile.GraphicsCards != nil || profile.Kernel != "" {
		t.Errorf("unselected groups collected: %+v", profile)
	}
}

func TestMasked(t *testing.T) {
	profile := &Profile{Hostname: "build-01", PublicIP: "203.0.113.7", Kernel: "6.11"}

	masked := profile.Masked()
	if masked.Hostname == "build-01" || masked.PublicIP == "203.0.113.7" {
		t.Errorf("Masked() = %+v, want hostname and address obscured", masked)
	}
	if masked.Kernel != "6.11" {
		t.Errorf("Masked() changed Kernel to %q", masked.Kernel)
	}
	if profile.Hostname != "build-01" {
		t.Error("Masked() modified the original profile")
	}
}

func TestLookup(t *testing.T) {
	p := newProbe(linuxFixture(t), fullProviders(), platform.Linux, platform.X86_64)

	tests := []struct {
		name string
		want string
	}{
		{FactOS, "Linux"},
		{FactArch, "X86_64"},
		{FactWSL, "true"},
		{FactKernel, "6.11.4-301.fc41.x86_64"},
		{FactWindowsEdition, "Professional 24H2"},
		{FactCPU, "Intel(R) Core(TM) i7-8650U CPU @ 1.90GHz"},
		{FactGPU, "TU117M"},
		{FactPublicIP, "203.0.113.7"},
		{"hostname", "build-01"},
		{"distro_id", "fedora"},
		{"cpu_cores", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Lookup(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}

	if _, err := p.Lookup(context.Background(), "temperature"); err == nil {
		t.Error("Lookup(unknown) error = nil")
	}
}

func TestFactNames(t *testing.T) {
	names := FactNames()
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("FactNames() repeats %q", n)
		}
		seen[n] = true
	}
	for _, want := range []string{FactOS, FactGPU, "distro_name", "cpu_cores"} {
		if !seen[want] {
			t.Errorf("FactNames() missing %q", want)
		}
	}
}
