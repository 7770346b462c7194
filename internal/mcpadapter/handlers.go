package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/composer"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
)

var ErrEmptyMessage = errors.New("message is required")

type Searcher interface {
	Search(ctx context.Context, query string) (records.Hits, error)
}

type Composer interface {
	Compose(ctx context.Context, query string, hits records.Hits, augment bool) composer.Result
}

// SearchInput is the search_campus tool input schema (matches the HTTP q parameter).
type SearchInput struct {
	Query string `json:"query" jsonschema:"substring to match in every collection, empty matches every record"`
}

// AskInput is the ask_campus tool input schema (matches the HTTP query body).
type AskInput struct {
	Message string `json:"message" jsonschema:"free-text campus question"`
	UseLLM  bool   `json:"use_llm,omitempty" jsonschema:"polish the reply with the language model when one is configured"`
}

type searchOutput struct {
	Hits records.Hits `json:"hits"`
}

// NewSearchHandler returns a tool handler that uses the given searcher.
// Pass the returned function to mcp.AddTool.
func NewSearchHandler(searcher Searcher) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
		return SearchCampus(ctx, searcher, req, input)
	}
}

// SearchCampus returns every collection's hits as a JSON text block.
func SearchCampus(
	ctx context.Context,
	searcher Searcher,
	req *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, any, error) {
	hits, err := searcher.Search(ctx, input.Query)
	if err != nil {
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}

	return jsonResult(searchOutput{Hits: hits})
}

// NewAskHandler returns a tool handler for question answering.
// Pass the returned function to mcp.AddTool.
func NewAskHandler(searcher Searcher, c Composer) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, any, error) {
		return AskCampus(ctx, searcher, c, req, input)
	}
}

// AskCampus runs search and compose for one message. Blank messages are rejected before any search.
func AskCampus(
	ctx context.Context,
	searcher Searcher,
	c Composer,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, nil, fmt.Errorf("invalid ask_campus input: %w", ErrEmptyMessage)
	}

	hits, err := searcher.Search(ctx, input.Message)
	if err != nil {
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}

	return jsonResult(c.Compose(ctx, input.Message, hits, input.UseLLM))
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tool result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
