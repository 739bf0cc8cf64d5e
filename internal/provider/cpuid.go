package provider

import (
	"fmt"
	"strings"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/klauspost/cpuid/v2"
)

// CPUInstruction reads processor identity detected by cpuid at startup.
type CPUInstruction struct {
	info *cpuid.CPUInfo
}

// NewCPUID returns a CPUID provider backed by the running processor.
func NewCPUID() *CPUInstruction {
	return &CPUInstruction{info: &cpuid.CPU}
}

// NewCPUIDFrom wraps an already detected CPUInfo.
func NewCPUIDFrom(info *cpuid.CPUInfo) *CPUInstruction {
	return &CPUInstruction{info: info}
}

// BrandString returns the processor brand string.
func (c *CPUInstruction) BrandString() (string, error) {
	brand := strings.TrimSpace(c.info.BrandName)
	if brand == "" {
		return "", fmt.Errorf("%w: cpuid brand string not reported", errors.ErrProviderUnavailable)
	}
	return brand, nil
}

// LogicalCores returns the number of logical processors.
func (c *CPUInstruction) LogicalCores() (uint32, error) {
	if c.info.LogicalCores <= 0 {
		return 0, fmt.Errorf("%w: cpuid logical core count not reported", errors.ErrProviderUnavailable)
	}
	return uint32(c.info.LogicalCores), nil
}
