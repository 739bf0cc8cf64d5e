package commands

import (
	"fmt"

	"github.com/girste/hostprobe/internal/util"
)

// PrintHelp displays the main help message
func PrintHelp() {
	help := `hostprobe - Cross-platform host inspection

USAGE:
    hostprobe [COMMAND]

COMMANDS:
    (none)      Start MCP server on stdio (default)
    report      Collect and print the full host profile
    os          Operating system
    arch        CPU architecture
    distro      Distribution name (Linux)
    cpu         Processor model
    gpu         First graphics adapter
    wsl         Whether running under WSL
    ip          Public IP address (network lookup)
    fact NAME   Any single fact (see FACTS)
    version     Show version
    help        This help

REPORT OPTIONS (hostprobe report):
    --format=FORMAT   Output format: text, json, summary
    --no-mask         Do not mask hostname and public IP
    --ip              Include the public IP lookup
    --quiet, -q       Suppress output (return exit code only)

    Exit codes: 0=all facts determined, 1=some facts unavailable, 2=usage or config error

ENVIRONMENT:
    HOSTPROBE_CONFIG_DIR   Directory holding .hostprobe.yaml
    HOSTPROBE_LOG_LEVEL    Probe and MCP log level (default: warn)
    LOG_LEVEL              CLI log level (default: warn)

EXAMPLES:
    hostprobe report --format=json
    hostprobe distro
    hostprobe fact cpu_cores
`
	fmt.Print(help)
}

// PrintFacts lists every fact name accepted by "hostprobe fact".
func PrintFacts(names []string) {
	fmt.Println("FACTS:")
	for _, n := range names {
		fmt.Printf("    %s\n", n)
	}
}

// PrintVersion prints the build version.
func PrintVersion() {
	fmt.Printf("hostprobe version %s\n", util.Version)
}
