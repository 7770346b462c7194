package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/seed"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	filePath := flag.String("file", "", "Seed YAML file, the embedded campus dataset when empty")
	force := flag.Bool("force", false, "Insert even when the store already holds records")
	countCommand := flag.Bool("count", false, "Print the number of stored records and exit")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Unable to load env variables")
	}

	ctx := context.Background()
	cfg := setup.LoadConfig()

	db, err := setup.OpenStore(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer db.Close()

	log.Info().Str("driver", db.Driver()).Msg("Record store connected")

	if *countCommand {
		count, err := db.Count(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to count records")
		}
		log.Info().Int64("records", count).Msg("Record count")
		return
	}

	path := *filePath
	if path == "" {
		path = cfg.SeedPath
	}

	dataset, err := seed.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load seed data")
	}

	if *force {
		if err := seed.Insert(ctx, db, dataset); err != nil {
			log.Fatal().Err(err).Msg("Ingestion failed")
		}
		log.Info().Int("records", dataset.Total()).Msg("Ingestion successful!")
		return
	}

	applied, err := seed.Apply(ctx, db, dataset, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}
	if !applied {
		log.Info().Msg("Store already holds records, use -force to insert anyway")
	}
}
