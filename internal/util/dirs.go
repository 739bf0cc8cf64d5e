package util

import (
	"os"
	"path/filepath"
)

// SystemConfigDir holds the machine wide configuration.
const SystemConfigDir = "/etc/hostprobe"

// GetConfigDir returns the per-user config directory, falling back to the
// system directory when running as root or without a home.
func GetConfigDir() string {
	if os.Geteuid() == 0 {
		return SystemConfigDir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return SystemConfigDir
	}
	return filepath.Join(home, ".config", "hostprobe")
}
