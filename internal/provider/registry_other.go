//go:build !windows

package provider

import (
	"fmt"

	"github.com/girste/hostprobe/internal/errors"
)

// SystemRegistry is unavailable outside Windows.
type SystemRegistry struct{}

// NewRegistry returns the registry provider for this platform.
func NewRegistry() Registry {
	return SystemRegistry{}
}

func (SystemRegistry) GetString(hive Hive, subkey, value string) (string, error) {
	return "", fmt.Errorf("%w: registry %s\\%s\\%s on non-windows host", errors.ErrProviderUnavailable, hive, subkey, value)
}
