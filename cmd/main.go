package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/setup"
	"github.com/rs/zerolog"
)

func main() {
	prompt := flag.String("prompt", "", "The campus question to answer")
	useLLM := flag.Bool("llm", false, "Polish the reply with the configured language model")
	stdin := flag.Bool("stdin", false, "Read the question from stdin")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var question string

	if *stdin {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read from stdin:", err)
		}
		question = strings.TrimSpace(string(bytes))
	} else if *prompt != "" {
		question = *prompt
	} else {
		log.Fatal("Please provide a question using -prompt or -stdin")
	}

	if strings.TrimSpace(question) == "" {
		log.Fatal("The question is empty")
	}

	ctx := context.Background()
	cfg := setup.LoadConfig()
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	hits, err := deps.Search.Search(ctx, question)
	if err != nil {
		log.Fatalf("Unable to search campus records: %v", err)
	}

	result := deps.Composer.Compose(ctx, question, hits, *useLLM)
	fmt.Printf("Campus Assistant: \n%s\n", result.Reply)
}
