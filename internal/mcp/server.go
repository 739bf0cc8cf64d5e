// Package mcp exposes the probe as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/girste/hostprobe/internal/config"
	"github.com/girste/hostprobe/internal/output"
	"github.com/girste/hostprobe/internal/probe"
	"github.com/girste/hostprobe/internal/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const serverName = "hostprobe"

// Server wraps the MCP server and the probe it answers from
type Server struct {
	mcpServer *server.MCPServer
	probe     *probe.Probe
	cfg       *config.Config
	logger    *zap.Logger
}

// NewServer registers the probe tools.
func NewServer(cfg *config.Config, p *probe.Probe) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(serverName, util.Version, server.WithToolCapabilities(false)),
		probe:     p,
		cfg:       cfg,
		logger:    util.Component("mcp"),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("host_profile",
		mcp.WithDescription("Collect the host profile: OS, architecture, distribution, kernel, CPU, GPUs and optionally the public IP. Facts that cannot be determined are listed under errors."),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(output.FormatJSON, output.FormatText, output.FormatSummary),
		),
		mcp.WithBoolean("mask",
			mcp.Description("Obscure hostname and public IP (defaults to the maskData config setting)"),
		),
		mcp.WithBoolean("public_ip",
			mcp.Description("Include the outbound public address lookup"),
		),
	), s.handleProfile)

	s.mcpServer.AddTool(mcp.NewTool("host_fact",
		mcp.WithDescription("Read a single host fact"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Fact name"),
			mcp.Enum(probe.FactNames()...),
		),
	), s.handleFact)
}

func (s *Server) handleProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", output.FormatJSON)
	mask := request.GetBool("mask", s.cfg.MaskData)

	sel := s.cfg.Selection()
	sel[probe.GroupPublicIP] = request.GetBool("public_ip", sel.Has(probe.GroupPublicIP))

	profile := s.probe.Collect(ctx, sel)
	out, err := output.NewFormatter(format, mask).Format(profile)
	if err != nil {
		s.logger.Error("failed to render profile", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("render profile: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleFact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value, err := s.probe.Lookup(ctx, name)
	if err != nil {
		s.logger.Warn("fact unavailable", zap.String("fact", name), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err)), nil
	}
	if s.cfg.MaskData {
		switch name {
		case probe.FactPublicIP:
			value = util.MaskIP(value)
		case "hostname":
			value = util.MaskHostname(value)
		}
	}
	return mcp.NewToolResultText(value), nil
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (s *Server) Serve() error {
	s.logger.Info("starting MCP server", zap.String("version", util.Version))
	return server.ServeStdio(s.mcpServer)
}
