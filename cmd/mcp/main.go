package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/api"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/setup"
	applogger "github.com/povarna/generative-ai-agents/campus-agent/internal/setup/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()

	// Setup logging. stdout carries the MCP transport.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = applogger.NewWithWriter(cfg.LogLevel, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "campus-agent",
			Version: api.Version,
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_campus",
		Description: "Case-insensitive substring search over campus schedules, facilities, dining, library and admin offices. An empty query returns every record.",
	}, mcpadapter.NewSearchHandler(deps.Search))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_campus",
		Description: "Answer a campus question from matching records, optionally polished by the language model.",
	}, mcpadapter.NewAskHandler(deps.Search, deps.Composer))
	return server
}
