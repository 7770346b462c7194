package setup

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/admin"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/augment"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/cache"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/composer"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/database"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/llm/openai"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/search"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/seed"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cachePrefix = "campus_search:"

type Dependencies struct {
	DB       *database.DB
	Search   *search.Service
	Composer *composer.Composer
	Admin    *admin.Service
	Logger   *zerolog.Logger

	redisClient *goredis.Client
}

// Close releases the store and cache connections.
func (d *Dependencies) Close() {
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
	d.DB.Close()
}

// Wire opens the store, seeds it if empty and builds the query pipeline.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dataset, err := seed.Load(cfg.SeedPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := seed.Apply(ctx, db, dataset, logger); err != nil {
		db.Close()
		return nil, err
	}

	deps := &Dependencies{
		DB:     db,
		Logger: logger,
	}

	var (
		searchCache search.Cache
		invalidator admin.Invalidator
	)
	if cfg.RedisAddr != "" {
		client, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, search cache disabled")
		} else {
			redisCache := cache.NewRedisSearchCache(client, cachePrefix, cfg.CacheTTL, logger)
			searchCache = redisCache
			invalidator = redisCache
			deps.redisClient = client
		}
	}

	var generator composer.Generator
	client, err := createLLMClient(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if client != nil {
		generator = augment.NewDelegate(client, augment.Config{
			Provider:  cfg.LLMProvider,
			Timeout:   cfg.LLMTimeout,
			MaxTokens: cfg.LLMMaxTokens,
		}, logger)
		logger.Info().Str("provider", cfg.LLMProvider).Msg("Augmentation enabled")
	} else {
		logger.Info().Str("provider", cfg.LLMProvider).Msg("No LLM credentials, augmentation disabled")
	}

	deps.Search = search.NewService(db, searchCache, logger)
	deps.Composer = composer.New(generator, logger)
	deps.Admin = admin.NewService(db, invalidator, logger)

	return deps, nil
}

// OpenStore connects to the configured record store and creates its tables.
func OpenStore(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*database.DB, error) {
	var (
		db  *database.DB
		err error
	)
	switch cfg.DBDriver {
	case DriverPostgres:
		db, err = database.NewWithBackoff(ctx, cfg.Postgres, 5, logger)
	case DriverSQLite, "":
		db, err = database.NewSQLite(ctx, cfg.SQLitePath, logger)
	default:
		err = fmt.Errorf("%w: unknown DB_DRIVER %q", database.ErrStoreUnavailable, cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// createLLMClient returns nil without error when the selected provider has no credentials.
func createLLMClient(ctx context.Context, cfg *Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case ProviderBedrock:
		if cfg.ClaudeModelID == "" {
			return nil, nil
		}
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case ProviderOpenAI, "":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}
