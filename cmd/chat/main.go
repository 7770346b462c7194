package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/session"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/tui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("CAMPUS_API_URL", "http://localhost:4000"), "Campus agent API base URL")
	useLLM := flag.Bool("llm", false, "Ask for LLM-polished replies")
	timeout := flag.Duration("timeout", 30*time.Second, "Request timeout")
	searchQuery := flag.String("search", "", "Print the hits for this query and exit instead of starting the chat")
	flag.Parse()

	// The TUI owns the terminal, only fatal errors are logged.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(zerolog.ErrorLevel)

	client := session.NewAPIClient(session.ClientConfig{
		BaseURL:             *baseURL,
		Timeout:             *timeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
	})

	if *searchQuery != "" {
		hits, err := client.Search(context.Background(), *searchQuery)
		if err != nil {
			log.Fatal().Err(err).Msg("Search failed")
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(session.SearchResponse{Hits: hits}); err != nil {
			log.Fatal().Err(err).Msg("Unable to print hits")
		}
		return
	}

	chat := session.New(client)
	chat.SetUseLLM(*useLLM)

	if _, err := tea.NewProgram(tui.New(context.Background(), chat), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal().Err(err).Msg("Chat client failed")
	}
}

func envOr(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
