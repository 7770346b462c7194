package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
)

type QueryRequest struct {
	Message string `json:"message"`
	UseLLM  bool   `json:"useLLM"`
}

type QueryResponse struct {
	Reply string       `json:"reply"`
	Hits  records.Hits `json:"hits"`
}

type SearchResponse struct {
	Hits records.Hits `json:"hits"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details"`
}

type ClientConfig struct {
	BaseURL             string
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// APIClient talks to the campus agent HTTP API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(config ClientConfig) *APIClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}

	return &APIClient{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

// Query calls POST /api/query.
func (c *APIClient) Query(ctx context.Context, request QueryRequest) (*QueryResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var response QueryResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Search calls GET /api/search.
func (c *APIClient) Search(ctx context.Context, query string) (records.Hits, error) {
	endpoint := c.baseURL + "/api/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return records.Hits{}, fmt.Errorf("failed to create request: %w", err)
	}

	var response SearchResponse
	if err := c.do(req, &response); err != nil {
		return records.Hits{}, err
	}
	return response.Hits.Normalize(), nil
}

func (c *APIClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("campus agent returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("campus agent returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
