package platform

import "runtime"

// Architecture is the canonical CPU architecture.
type Architecture int

const (
	// ArchUnknown is returned for any token not in the classification table
	ArchUnknown Architecture = iota
	X86
	X86_64
	Arm
	Aarch64
	Loongarch64
	M68k
	Csky
	Mips
	Mips64
	Powerpc
	Powerpc64
	Riscv64
	S390x
	Sparc64
)

var archTokens = map[string]Architecture{
	"x86":         X86,
	"386":         X86,
	"x86_64":      X86_64,
	"amd64":       X86_64,
	"arm":         Arm,
	"aarch64":     Aarch64,
	"arm64":       Aarch64,
	"loongarch64": Loongarch64,
	"loong64":     Loongarch64,
	"m68k":        M68k,
	"csky":        Csky,
	"mips":        Mips,
	"mipsle":      Mips,
	"mips64":      Mips64,
	"mips64le":    Mips64,
	"powerpc":     Powerpc,
	"ppc":         Powerpc,
	"powerpc64":   Powerpc64,
	"ppc64":       Powerpc64,
	"ppc64le":     Powerpc64,
	"riscv64":     Riscv64,
	"s390x":       S390x,
	"sparc64":     Sparc64,
}

// ClassifyArch maps raw onto an Architecture, returning ArchUnknown for
// anything outside the table.
func ClassifyArch(raw string) Architecture {
	if arch, ok := archTokens[raw]; ok {
		return arch
	}
	return ArchUnknown
}

// CurrentArch classifies the architecture this binary was built for.
func CurrentArch() Architecture {
	return ClassifyArch(runtime.GOARCH)
}

// String returns the variant name
func (a Architecture) String() string {
	switch a {
	case X86:
		return "X86"
	case X86_64:
		return "X86_64"
	case Arm:
		return "Arm"
	case Aarch64:
		return "Aarch64"
	case Loongarch64:
		return "Loongarch64"
	case M68k:
		return "M68k"
	case Csky:
		return "Csky"
	case Mips:
		return "Mips"
	case Mips64:
		return "Mips64"
	case Powerpc:
		return "Powerpc"
	case Powerpc64:
		return "Powerpc64"
	case Riscv64:
		return "Riscv64"
	case S390x:
		return "S390x"
	case Sparc64:
		return "Sparc64"
	default:
		return "Unknown"
	}
}

// MarshalText renders the variant name in JSON and YAML output.
func (a Architecture) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// HasCPUID reports whether the architecture exposes the x86 CPUID instruction.
func (a Architecture) HasCPUID() bool {
	return a == X86 || a == X86_64
}
