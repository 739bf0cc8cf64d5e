// Package system provides container-aware filesystem helpers.
// When running in Docker with the host filesystem mounted at /host, paths
// are automatically prefixed so facts describe the host, not the container.
package system

import (
	"os"
	"path/filepath"
	"strings"
)

const containerHostRoot = "/host"

// hostRoot is set to "/host" when running in container with host mounts
var hostRoot = ""

func init() {
	if _, err := os.Stat(containerHostRoot + "/proc"); err == nil {
		hostRoot = containerHostRoot
	}
}

// SetHostRoot overrides the detected host root. It is meant to be called
// once at startup, before any fact lookup.
func SetHostRoot(root string) {
	hostRoot = strings.TrimSuffix(root, "/")
}

// HostRoot returns the prefix applied to host paths ("" when native).
func HostRoot() string {
	return hostRoot
}

// JoinRoot prefixes path with root unless it is already prefixed.
func JoinRoot(root, path string) string {
	if root == "" {
		return path
	}

	// Don't double-prefix
	if path == root || strings.HasPrefix(path, root+"/") {
		return path
	}

	return filepath.Join(root, path)
}

// IsInContainer returns true if running in containerized environment
func IsInContainer() bool {
	return hostRoot != ""
}

// FileExists checks if a file exists. Any stat failure counts as absent.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
