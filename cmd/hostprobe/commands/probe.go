package commands

import (
	"time"

	"github.com/girste/hostprobe/internal/config"
	"github.com/girste/hostprobe/internal/log"
	"github.com/girste/hostprobe/internal/probe"
	"github.com/girste/hostprobe/internal/provider"
	"github.com/girste/hostprobe/internal/system"
	"github.com/girste/hostprobe/internal/util"
)

// LoadConfig reads the config or exits with a message on stderr.
func LoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.ErrorWithErr(err, "failed to load config")
		exit(2)
		return nil
	}
	if cfg.HostRoot != "" {
		system.SetHostRoot(cfg.HostRoot)
	}
	return cfg
}

// NewProbe builds a probe for the host described by cfg.
func NewProbe(cfg *config.Config) *probe.Probe {
	logger := util.Component("probe")
	root := system.HostRoot()
	if system.IsInContainer() {
		log.Debugf("probing host filesystem mounted at %s", root)
	}

	ip := provider.PublicIPOptions{
		Endpoint: cfg.PublicIP.Endpoint,
		Timeout:  time.Duration(cfg.PublicIP.TimeoutSeconds) * time.Second,
		RetryMax: cfg.PublicIP.RetryMax,
		Logger:   util.Component("publicip"),
	}
	return probe.New(
		probe.WithProviders(probe.DefaultProviders(root, ip)),
		probe.WithLogger(logger),
	)
}
