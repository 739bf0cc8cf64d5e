package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/girste/hostprobe/internal/probe"
)

// Format types
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatSummary = "summary"
)

const (
	rule    = "═══════════════════════════════════════════════════════════════\n"
	divider = "───────────────────────────────────────────────────────────────\n"
)

// Formatter renders a probe.Profile
type Formatter struct {
	format string
	mask   bool
}

// NewFormatter creates a new formatter. An unknown format renders as text.
func NewFormatter(format string, mask bool) *Formatter {
	switch format {
	case FormatJSON, FormatSummary:
	default:
		format = FormatText
	}
	return &Formatter{format: format, mask: mask}
}

// Format renders the profile in the configured format.
func (f *Formatter) Format(p *probe.Profile) (string, error) {
	switch f.format {
	case FormatJSON:
		return f.ToJSON(p)
	case FormatSummary:
		return f.ToSummary(p), nil
	default:
		return f.ToText(p), nil
	}
}

func (f *Formatter) prepare(p *probe.Profile) *probe.Profile {
	if f.mask {
		return p.Masked()
	}
	return p
}

// ToJSON outputs the profile as indented JSON
func (f *Formatter) ToJSON(p *probe.Profile) (string, error) {
	data, err := json.MarshalIndent(f.prepare(p), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToText outputs the profile as formatted text
func (f *Formatter) ToText(p *probe.Profile) string {
	p = f.prepare(p)
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString(fmt.Sprintf("  HOST PROFILE  -  %s\n", orUnknown(p.Hostname)))
	sb.WriteString(rule + "\n")

	row(&sb, "OS", p.OS.String())
	row(&sb, "Arch", p.Arch.String())
	if p.Kernel != "" {
		row(&sb, "Kernel", p.Kernel)
	}
	if p.IsWSL != nil && *p.IsWSL {
		row(&sb, "WSL", "yes")
	}
	row(&sb, "Time", p.Timestamp.Format(time.RFC3339))
	sb.WriteString("\n")

	if d := p.Distro; d != nil {
		section(&sb, "DISTRIBUTION")
		row(&sb, "Name", d.Name)
		row(&sb, "ID", d.ID)
		row(&sb, "Version", d.Version)
		if d.CPEName != "" {
			row(&sb, "CPE", d.CPEName)
		}
		if d.PlatformID != "" {
			row(&sb, "Platform", d.PlatformID)
		}
		sb.WriteString("\n")
	}

	if w := p.WindowsEdition; w != nil {
		section(&sb, "WINDOWS")
		row(&sb, "Edition", w.Edition)
		if w.DisplayVersion != "" {
			row(&sb, "Version", w.DisplayVersion)
		}
		sb.WriteString("\n")
	}

	if c := p.Processor; c != nil {
		section(&sb, "PROCESSOR")
		row(&sb, "Model", c.Model)
		row(&sb, "Cores", fmt.Sprintf("%d (via %s)", c.Cores, c.Source))
		sb.WriteString("\n")
	}

	if len(p.GraphicsCards) > 0 {
		section(&sb, "GRAPHICS")
		for i, g := range p.GraphicsCards {
			line := g.Model
			if g.Vendor != "" {
				line = g.Vendor + " " + line
			}
			if g.DriverVersion != "" {
				line += " [" + g.DriverVersion + "]"
			}
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, line))
		}
		sb.WriteString("\n")
	}

	if p.PublicIP != "" {
		section(&sb, "NETWORK")
		row(&sb, "Public IP", p.PublicIP)
		sb.WriteString("\n")
	}

	if len(p.Errors) > 0 {
		section(&sb, "⚠️  UNAVAILABLE FACTS")
		for _, fact := range sortedKeys(p.Errors) {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", fact, p.Errors[fact]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(rule)
	return sb.String()
}

// ToSummary outputs a one-line summary
func (f *Formatter) ToSummary(p *probe.Profile) string {
	p = f.prepare(p)
	parts := []string{orUnknown(p.Hostname), p.OS.String() + "/" + p.Arch.String()}
	if p.Distro != nil && p.Distro.Name != "" {
		parts = append(parts, p.Distro.Name)
	}
	if p.WindowsEdition != nil {
		parts = append(parts, "Windows "+p.WindowsEdition.Edition)
	}
	if p.Processor != nil {
		parts = append(parts, fmt.Sprintf("%s x%d", p.Processor.Model, p.Processor.Cores))
	}
	parts = append(parts, fmt.Sprintf("%d GPU(s)", len(p.GraphicsCards)))
	if len(p.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("%d unavailable", len(p.Errors)))
	}
	return strings.Join(parts, " | ")
}

// GetExitCode returns 1 when any selected fact could not be determined
func (f *Formatter) GetExitCode(p *probe.Profile) int {
	if len(p.Errors) > 0 {
		return 1
	}
	return 0
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(divider)
	sb.WriteString("  " + title + "\n")
	sb.WriteString(divider)
}

func row(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("  %-10s %s\n", label+":", orUnknown(value)))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
