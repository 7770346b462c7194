package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/database"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "SQLITE_PATH", "LLM_PROVIDER", "OPENAI_MODEL", "LLM_TIMEOUT", "LLM_MAX_TOKENS", "CACHE_TTL", "AWS_REGION"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "4000" {
		t.Errorf("Port: %q", cfg.Port)
	}
	if cfg.DBDriver != DriverSQLite || cfg.SQLitePath != "campus.db" {
		t.Errorf("Unexpected store defaults: %q %q", cfg.DBDriver, cfg.SQLitePath)
	}
	if cfg.LLMProvider != ProviderOpenAI || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Unexpected LLM defaults: %q %q", cfg.LLMProvider, cfg.OpenAIModel)
	}
	if cfg.LLMTimeout != 15*time.Second || cfg.LLMMaxTokens != 512 {
		t.Errorf("Unexpected delegate defaults: %v %d", cfg.LLMTimeout, cfg.LLMMaxTokens)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL: %v", cfg.CacheTTL)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Errorf("AWSRegion: %q", cfg.AWSRegion)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("LLM_MAX_TOKENS", "128")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("CAMPUS_DB_HOST", "db.internal")

	cfg := LoadConfig()

	if cfg.Port != "9000" {
		t.Errorf("Port: %q", cfg.Port)
	}
	if cfg.LLMTimeout != 3*time.Second {
		t.Errorf("LLMTimeout: %v", cfg.LLMTimeout)
	}
	if cfg.LLMMaxTokens != 128 {
		t.Errorf("LLMMaxTokens: %d", cfg.LLMMaxTokens)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Expected invalid CACHE_TTL to fall back, got %v", cfg.CacheTTL)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres host: %q", cfg.Postgres.Host)
	}
}

func testConfig() *Config {
	return &Config{
		DBDriver:    DriverSQLite,
		SQLitePath:  database.MemoryPath,
		LLMProvider: ProviderOpenAI,
		OpenAIModel: "gpt-4o-mini",
		LLMTimeout:  time.Second,
	}
}

func TestWire_SeedsAndDisablesAugmentation(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	deps, err := Wire(ctx, testConfig(), &logger)
	if err != nil {
		t.Fatalf("Wire() failed: %v", err)
	}
	defer deps.Close()

	if deps.Composer.AugmentationEnabled() {
		t.Error("Expected augmentation disabled without credentials")
	}

	hits, err := deps.Search.Search(ctx, "gym")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits.Facilities) == 0 {
		t.Error("Expected seeded gym facility")
	}
}

func TestWire_OpenAIEnablesAugmentation(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIKey = "test-key"
	logger := zerolog.Nop()

	deps, err := Wire(context.Background(), cfg, &logger)
	if err != nil {
		t.Fatalf("Wire() failed: %v", err)
	}
	defer deps.Close()

	if !deps.Composer.AugmentationEnabled() {
		t.Error("Expected augmentation enabled with an API key")
	}
}

func TestWire_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		isErr  error
	}{
		{name: "unknown driver", mutate: func(cfg *Config) { cfg.DBDriver = "oracle" }, isErr: database.ErrStoreUnavailable},
		{name: "unknown provider", mutate: func(cfg *Config) { cfg.LLMProvider = "carrier-pigeon" }},
		{name: "missing seed file", mutate: func(cfg *Config) { cfg.SeedPath = "/nonexistent/seed.yaml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			logger := zerolog.Nop()

			deps, err := Wire(context.Background(), cfg, &logger)
			if err == nil {
				deps.Close()
				t.Fatal("Expected error")
			}
			if tt.isErr != nil && !errors.Is(err, tt.isErr) {
				t.Errorf("Expected %v, got %v", tt.isErr, err)
			}
		})
	}
}
