package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/girste/hostprobe/internal/log"
	"github.com/girste/hostprobe/internal/probe"
	"github.com/girste/hostprobe/internal/util"
)

// Subcommand aliases for single facts
var factAliases = map[string]string{
	"distro": "distro_name",
	"ip":     probe.FactPublicIP,
}

// ResolveFact maps a subcommand to a fact name Lookup accepts.
func ResolveFact(name string) (string, bool) {
	if alias, ok := factAliases[name]; ok {
		name = alias
	}
	for _, known := range probe.FactNames() {
		if known == name {
			return name, true
		}
	}
	return "", false
}

// RunFact prints one fact on stdout and returns the exit code.
func RunFact(name string) int {
	fact, ok := ResolveFact(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown fact: %s\n", name)
		return 2
	}

	cfg := LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value, err := NewProbe(cfg).Lookup(ctx, fact)
	if err != nil {
		log.FactFailed(fact, err)
		return 1
	}
	if cfg.MaskData {
		switch fact {
		case probe.FactPublicIP:
			value = util.MaskIP(value)
		case "hostname":
			value = util.MaskHostname(value)
		}
	}
	if value == "" {
		value = "none"
	}
	fmt.Println(value)
	return 0
}
