// Package hostprobe identifies the host it runs on.
//
// Hostprobe classifies the operating system and CPU architecture, reads
// distribution, hostname and processor facts from their text sources,
// and queries the registry, CPUID, GPU enumeration and a public IP
// echo service through pluggable providers. Run it as a CLI or as an
// MCP server on stdio.
package hostprobe
