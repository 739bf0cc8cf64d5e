package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/girste/hostprobe/internal/log"
	"github.com/girste/hostprobe/internal/mcp"
	"github.com/girste/hostprobe/internal/util"
)

// RunServe starts the MCP stdio server and blocks until it stops or a
// termination signal arrives.
func RunServe() {
	cfg := LoadConfig()
	server := mcp.NewServer(cfg, NewProbe(cfg))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve()
	}()

	defer func() { _ = util.GetLogger().Sync() }()

	select {
	case sig := <-sigChan:
		fmt.Fprintf(os.Stderr, "\nReceived %s signal, shutting down...\n", sig)
		_ = util.GetLogger().Sync()
		exit(0)
	case err := <-errChan:
		if err != nil {
			log.ErrorWithErr(err, "MCP server stopped")
			_ = util.GetLogger().Sync()
			exit(1)
		}
	}
}
