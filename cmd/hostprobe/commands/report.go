package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/girste/hostprobe/internal/log"
	"github.com/girste/hostprobe/internal/output"
	"github.com/girste/hostprobe/internal/probe"
)

// RunReport collects the full profile and prints it. It returns the
// process exit code: 1 when any selected fact could not be determined.
func RunReport(args []string) int {
	cfg := LoadConfig()

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	format := fs.String("format", cfg.Format, "Output format: text, json, summary")
	noMask := fs.Bool("no-mask", false, "Show hostname and public IP unmasked")
	withIP := fs.Bool("ip", false, "Include the public IP lookup")
	quiet := fs.Bool("quiet", false, "Suppress output (return exit code only)")
	fs.BoolVar(quiet, "q", false, "Shorthand for --quiet")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sel := cfg.Selection()
	if *withIP {
		sel[probe.GroupPublicIP] = true
	}

	profile := NewProbe(cfg).Collect(ctx, sel)
	for fact, msg := range profile.Errors {
		log.Debugf("%s unavailable: %s", fact, msg)
	}

	f := output.NewFormatter(*format, cfg.MaskData && !*noMask)
	out, err := f.Format(profile)
	if err != nil {
		log.ErrorWithErr(err, "failed to render report")
		return 2
	}
	if !*quiet {
		fmt.Fprintln(os.Stdout, out)
	}
	return f.GetExitCode(profile)
}
