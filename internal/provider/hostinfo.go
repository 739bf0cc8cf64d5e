package provider

import (
	"fmt"
	"strings"

	"github.com/elastic/go-sysinfo"
	"github.com/girste/hostprobe/internal/errors"
)

// SysInfo reads host details through go-sysinfo.
type SysInfo struct{}

func NewHostInfo() SysInfo {
	return SysInfo{}
}

// KernelVersion returns the running kernel's release string.
func (SysInfo) KernelVersion() (string, error) {
	host, err := sysinfo.Host()
	if err != nil {
		return "", fmt.Errorf("%w: host info: %v", errors.ErrProviderUnavailable, err)
	}
	kernel := strings.TrimSpace(host.Info().KernelVersion)
	if kernel == "" {
		return "", fmt.Errorf("%w: kernel version not reported", errors.ErrProviderUnavailable)
	}
	return kernel, nil
}
