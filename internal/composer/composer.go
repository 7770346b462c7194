package composer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/augment"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
)

const (
	// NoRecordsSummary is the context summary when nothing matched.
	NoRecordsSummary = "No matching campus records."

	maxRecordsPerCollection = 3
)

// Generator is the augmentation delegate as seen by the composer.
type Generator interface {
	Generate(ctx context.Context, prompt string) augment.Outcome
}

type Mode string

const (
	ModeTemplated Mode = "templated"
	ModeAugmented Mode = "augmented"
	ModeFallback  Mode = "fallback"
)

type Result struct {
	Reply string       `json:"reply" description:"Reply shown to the user"`
	Hits  records.Hits `json:"hits" description:"Matches per collection"`
	Mode  Mode         `json:"-"`
}

type Composer struct {
	delegate Generator
	logger   *zerolog.Logger
}

// New builds a composer. A nil delegate disables augmentation.
func New(delegate Generator, logger *zerolog.Logger) *Composer {
	return &Composer{
		delegate: delegate,
		logger:   logger,
	}
}

func (c *Composer) AugmentationEnabled() bool {
	return c.delegate != nil
}

// Compose turns hits into a reply. It never returns an empty reply and never fails:
// delegate errors are folded into the fallback reply.
func (c *Composer) Compose(ctx context.Context, query string, hits records.Hits, augmentRequested bool) Result {
	summary := Summarize(hits)

	result := Result{Hits: hits}
	if !augmentRequested || c.delegate == nil {
		result.Reply = templatedReply(query, hits, summary)
		result.Mode = ModeTemplated
	} else {
		outcome := c.delegate.Generate(ctx, BuildPrompt(query, summary))
		switch outcome.Failure {
		case augment.FailureNone:
			result.Reply = outcome.Text
			result.Mode = ModeAugmented
		default:
			c.logger.Warn().
				Err(outcome.Err).
				Str("failure", string(outcome.Failure)).
				Msg("Augmentation failed, using fallback reply")
			// Zero hits still get this reply, not the "couldn't find" template.
			result.Reply = "Found records. " + summary
			result.Mode = ModeFallback
		}
	}

	metrics.RepliesTotal.WithLabelValues(string(result.Mode)).Inc()
	c.logger.Info().
		Str("query", query).
		Int("hits", hits.Total()).
		Bool("augment_requested", augmentRequested).
		Str("mode", string(result.Mode)).
		Msg("Reply composed")

	return result
}

func templatedReply(query string, hits records.Hits, summary string) string {
	if !hits.Empty() {
		return "I found some items: \n" + summary
	}
	return fmt.Sprintf("I couldn't find matching campus records for \"%s\". Try different keywords or ask the Registrar.", query)
}

// Summarize renders up to three records per collection as compact JSON, one line per collection.
func Summarize(hits records.Hits) string {
	var fragments []string
	for _, list := range hits.Lists() {
		if len(list.Records) == 0 {
			continue
		}

		shown := list.Records
		if len(shown) > maxRecordsPerCollection {
			shown = shown[:maxRecordsPerCollection]
		}

		encoded := make([]string, len(shown))
		for i, record := range shown {
			encoded[i] = compact(record)
		}

		fragments = append(fragments, strings.ToUpper(string(list.Collection))+": "+strings.Join(encoded, "; "))
	}

	if len(fragments) == 0 {
		return NoRecordsSummary
	}
	return strings.Join(fragments, "\n")
}

func compact(record records.Record) string {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf("%+v", record)
	}
	return string(data)
}

// BuildPrompt embeds the user's question and the record summary for the delegate.
func BuildPrompt(query string, summary string) string {
	return fmt.Sprintf(`You are a helpful campus information assistant.

A student asked: %q

Campus records matching the question:
<context>
%s
</context>

Answer the question in a short, friendly reply using only these records. If they do not answer it, say so and suggest asking the Registrar.`,
		query, summary)
}
