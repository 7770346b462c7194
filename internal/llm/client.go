package llm

import (
	"context"
)

// Client is an interface for invoking LLM models
// This allows mocking in tests without making real API calls
//
//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks
type Client interface {
	InvokeModel(ctx context.Context, request Request) (*Response, error)
}
