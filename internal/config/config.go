package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/girste/hostprobe/internal/errors"
	"github.com/girste/hostprobe/internal/probe"
	"github.com/girste/hostprobe/internal/util"
	"gopkg.in/yaml.v3"
)

// ConfigDirEnv points at a directory holding .hostprobe.yaml (for Docker).
const ConfigDirEnv = "HOSTPROBE_CONFIG_DIR"

type Config struct {
	Facts    map[string]bool `yaml:"facts"`
	MaskData bool            `yaml:"maskData"`
	HostRoot string          `yaml:"hostRoot"` // overrides /host detection
	Format   string          `yaml:"format"`   // text, json, summary
	PublicIP PublicIPConfig  `yaml:"publicIP"`
}

// PublicIPConfig controls the outbound address lookup
type PublicIPConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	RetryMax       int    `yaml:"retryMax"`
}

func Default() *Config {
	facts := map[string]bool{}
	for g, enabled := range probe.DefaultSelection() {
		facts[string(g)] = enabled
	}
	return &Config{
		Facts:    facts,
		MaskData: false,
		Format:   "text",
		PublicIP: PublicIPConfig{
			Endpoint:       "https://api.ipify.org",
			TimeoutSeconds: 5,
			RetryMax:       2,
		},
	}
}

// SearchPaths returns config locations in priority order.
func SearchPaths() []string {
	paths := []string{}

	// 1. Environment variable (highest priority - for Docker)
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		paths = append(paths,
			filepath.Join(dir, ".hostprobe.yaml"),
			filepath.Join(dir, ".hostprobe.yml"),
		)
	}

	// 2. Current directory
	paths = append(paths, ".hostprobe.yaml", ".hostprobe.yml")

	// 3. Home directory
	if home, _ := os.UserHomeDir(); home != "" {
		paths = append(paths,
			filepath.Join(home, ".hostprobe.yaml"),
			filepath.Join(util.GetConfigDir(), "config.yaml"),
		)
	}

	// 4. System-wide config
	paths = append(paths, filepath.Join(util.SystemConfigDir, "config.yaml"))
	return paths
}

// Load reads the first config found on SearchPaths, or defaults.
func Load() (*Config, error) {
	return LoadFrom(SearchPaths()...)
}

// LoadFrom reads the first readable file among paths over the defaults.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := Default()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config at %s: %w", path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed for %s: %w", path, err)
		}
		break
	}

	return cfg, nil
}

// IsFactEnabled reports whether a group is switched on. Unlisted groups
// follow the default selection.
func (c *Config) IsFactEnabled(g probe.Group) bool {
	if enabled, ok := c.Facts[string(g)]; ok {
		return enabled
	}
	return probe.DefaultSelection().Has(g)
}

// Selection converts the fact switches for probe.Collect.
func (c *Config) Selection() probe.Selection {
	sel := probe.Selection{}
	for _, g := range probe.AllGroups {
		sel[g] = c.IsFactEnabled(g)
	}
	return sel
}

// Validate checks config for errors
func (c *Config) Validate() error {
	for name := range c.Facts {
		if !probe.IsValidGroup(name) {
			return errors.Wrap(errors.ErrInvalidConfig, "unknown fact %q", name)
		}
	}

	endpoint := strings.TrimSpace(c.PublicIP.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return errors.Wrap(errors.ErrInvalidConfig, "publicIP.endpoint must start with http:// or https://")
	}

	if c.PublicIP.TimeoutSeconds < 0 || c.PublicIP.TimeoutSeconds > 120 {
		return errors.Wrap(errors.ErrInvalidConfig, "publicIP.timeoutSeconds must be between 0 and 120, got: %d", c.PublicIP.TimeoutSeconds)
	}
	if c.PublicIP.RetryMax < 0 || c.PublicIP.RetryMax > 10 {
		return errors.Wrap(errors.ErrInvalidConfig, "publicIP.retryMax must be between 0 and 10, got: %d", c.PublicIP.RetryMax)
	}

	switch c.Format {
	case "", "text", "json", "summary":
	default:
		return errors.Wrap(errors.ErrInvalidConfig, "format must be text, json or summary, got: %s", c.Format)
	}

	if c.HostRoot != "" && !filepath.IsAbs(c.HostRoot) {
		return errors.Wrap(errors.ErrInvalidConfig, "hostRoot must be an absolute path, got: %s", c.HostRoot)
	}

	return nil
}
