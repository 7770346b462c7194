package augment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/metrics"
	"github.com/rs/zerolog"
)

type Config struct {
	Provider    string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// Delegate makes exactly one time-bounded model call per Generate.
type Delegate struct {
	client llm.Client
	config Config
	logger *zerolog.Logger
}

func NewDelegate(client llm.Client, config Config, logger *zerolog.Logger) *Delegate {
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 512
	}

	return &Delegate{
		client: client,
		config: config,
		logger: logger,
	}
}

func (d *Delegate) Provider() string {
	return d.config.Provider
}

func (d *Delegate) Generate(ctx context.Context, prompt string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	start := time.Now()
	response, err := d.client.InvokeModel(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	})
	duration := time.Since(start)
	metrics.DelegateRequestDuration.WithLabelValues(d.config.Provider).Observe(duration.Seconds())

	var outcome Outcome
	switch {
	case err != nil:
		outcome = Failed(classify(ctx, err), err)
	case response == nil || strings.TrimSpace(response.Content) == "":
		outcome = Failed(FailureMalformed, fmt.Errorf("delegate reply has no text: %w", llm.ErrEmptyResponse))
	default:
		outcome = Success(response.Content)
	}

	metrics.DelegateRequestsTotal.WithLabelValues(d.config.Provider, outcome.Label()).Inc()

	if !outcome.OK() {
		d.logger.Warn().
			Err(outcome.Err).
			Str("provider", d.config.Provider).
			Str("failure", string(outcome.Failure)).
			Dur("duration", duration).
			Msg("Augmentation failed")
	} else {
		d.logger.Debug().
			Str("provider", d.config.Provider).
			Dur("duration", duration).
			Msg("Augmentation succeeded")
	}

	return outcome
}

func classify(ctx context.Context, err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return FailureTimeout
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, llm.ErrEmptyResponse) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return FailureMalformed
	}

	return FailureTransport
}
