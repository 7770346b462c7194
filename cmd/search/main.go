package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/search"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	query := flag.String("q", "", "Substring to match, empty matches every record")
	flag.Parse()

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()
	cfg := setup.LoadConfig()

	db, err := setup.OpenStore(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer db.Close()

	hits, err := search.NewService(db, nil, &logger).Search(ctx, *query)
	if err != nil {
		log.Fatal().Err(err).Msg("Search failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string]any{"hits": hits}); err != nil {
		log.Fatal().Err(err).Msg("Unable to print hits")
	}

	fmt.Fprintf(os.Stderr, "%d records matched\n", hits.Total())
}
