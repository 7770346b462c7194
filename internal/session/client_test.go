package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
)

func TestAPIClient_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/query" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Message != "gym" || !req.UseLLM {
			t.Errorf("Unexpected request body: %+v", req)
		}

		hits := records.NewHits()
		hits.Facilities = []records.Facility{{ID: 1, Name: "Gym"}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(QueryResponse{Reply: "I found some items", Hits: hits})
	}))
	defer server.Close()

	client := NewAPIClient(ClientConfig{BaseURL: server.URL + "/", Timeout: time.Second})

	resp, err := client.Query(context.Background(), QueryRequest{Message: "gym", UseLLM: true})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if resp.Reply != "I found some items" {
		t.Errorf("Reply: %q", resp.Reply)
	}
	if len(resp.Hits.Facilities) != 1 {
		t.Errorf("Expected 1 facility, got %d", len(resp.Hits.Facilities))
	}
}

func TestAPIClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "green bowl" {
			t.Errorf("Expected q=green bowl, got %q", got)
		}
		w.Write([]byte(`{"hits":{"dining":[{"id":2,"name":"Green Bowl"}]}}`))
	}))
	defer server.Close()

	client := NewAPIClient(ClientConfig{BaseURL: server.URL})

	hits, err := client.Search(context.Background(), "green bowl")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(hits.Dining) != 1 || hits.Dining[0].Name != "Green Bowl" {
		t.Errorf("Unexpected hits: %+v", hits.Dining)
	}
	if hits.Schedules == nil {
		t.Error("Expected missing collections to be normalized")
	}
}

func TestAPIClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"message is required","code":400}`))
	}))
	defer server.Close()

	client := NewAPIClient(ClientConfig{BaseURL: server.URL})

	_, err := client.Query(context.Background(), QueryRequest{Message: " "})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "message is required") {
		t.Errorf("Expected API error message, got %v", err)
	}
}

func TestAPIClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	s := New(NewAPIClient(ClientConfig{BaseURL: url, Timeout: time.Second}))
	s.Submit(context.Background(), "hello")

	log := s.Log()
	if len(log) != 2 || log[1].Text != TransportFailureReply {
		t.Errorf("Expected failure reply in log, got %+v", log)
	}
}
