//go:build windows

package provider

import (
	"fmt"

	"github.com/girste/hostprobe/internal/errors"
	"golang.org/x/sys/windows/registry"
)

// SystemRegistry reads from the live Windows registry.
type SystemRegistry struct{}

// NewRegistry returns the registry provider for this platform.
func NewRegistry() Registry {
	return SystemRegistry{}
}

func hiveKey(h Hive) (registry.Key, error) {
	switch h {
	case LocalMachine:
		return registry.LOCAL_MACHINE, nil
	case CurrentUser:
		return registry.CURRENT_USER, nil
	default:
		return 0, errors.New("unsupported registry hive %q", h)
	}
}

// GetString opens hive\subkey read-only and returns the named string value.
func (SystemRegistry) GetString(hive Hive, subkey, value string) (string, error) {
	root, err := hiveKey(hive)
	if err != nil {
		return "", err
	}

	key, err := registry.OpenKey(root, subkey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%w: %s\\%s", errors.ErrFieldNotFound, hive, subkey)
		}
		return "", fmt.Errorf("%w: open %s\\%s: %v", errors.ErrProviderUnavailable, hive, subkey, err)
	}
	defer key.Close()

	s, _, err := key.GetStringValue(value)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%w: %s\\%s\\%s", errors.ErrFieldNotFound, hive, subkey, value)
		}
		return "", fmt.Errorf("%w: read %s\\%s\\%s: %v", errors.ErrProviderUnavailable, hive, subkey, value, err)
	}
	return s, nil
}
