package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	mu       sync.Mutex
	requests []QueryRequest
	reply    string
	err      error
	release  chan struct{}
	started  chan struct{}
}

func (f *fakeTransport) Query(ctx context.Context, request QueryRequest) (*QueryResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &QueryResponse{Reply: f.reply}, nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		transport := &fakeTransport{reply: "hi"}
		s := New(transport)

		if s.Submit(context.Background(), text) {
			t.Errorf("Expected Submit(%q) to be dropped", text)
		}
		if len(s.Log()) != 0 {
			t.Errorf("Expected empty log for %q, got %d entries", text, len(s.Log()))
		}
		if transport.calls() != 0 {
			t.Errorf("Expected no request for %q", text)
		}
	}
}

func TestSubmit_AppendsUserAndAssistant(t *testing.T) {
	transport := &fakeTransport{reply: "The Gym opens at 6am."}
	s := New(transport)

	if !s.Submit(context.Background(), "gym hours") {
		t.Fatal("Expected Submit to be accepted")
	}

	log := s.Log()
	if len(log) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(log))
	}
	if log[0] != (Entry{Speaker: SpeakerUser, Text: "gym hours"}) {
		t.Errorf("Unexpected user entry: %+v", log[0])
	}
	if log[1] != (Entry{Speaker: SpeakerAssistant, Text: "The Gym opens at 6am."}) {
		t.Errorf("Unexpected assistant entry: %+v", log[1])
	}
	if s.Pending() {
		t.Error("Expected pending to be cleared")
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	s := New(transport)

	if !s.Submit(context.Background(), "library") {
		t.Fatal("Expected Submit to be accepted")
	}

	log := s.Log()
	if len(log) != 2 {
		t.Fatalf("Expected exactly one assistant entry after failure, got %d entries", len(log))
	}
	if log[1].Speaker != SpeakerAssistant || log[1].Text != TransportFailureReply {
		t.Errorf("Unexpected failure entry: %+v", log[1])
	}
	if s.Pending() {
		t.Error("Expected pending to be cleared after failure")
	}
}

func TestSubmit_DroppedWhilePending(t *testing.T) {
	transport := &fakeTransport{
		reply:   "done",
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	s := New(transport)

	done := make(chan bool)
	go func() {
		done <- s.Submit(context.Background(), "first")
	}()

	select {
	case <-transport.started:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for first request")
	}

	if !s.Pending() {
		t.Error("Expected pending while request in flight")
	}
	if s.Submit(context.Background(), "second") {
		t.Error("Expected second Submit to be dropped")
	}

	close(transport.release)
	if !<-done {
		t.Error("Expected first Submit to be accepted")
	}

	log := s.Log()
	if len(log) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(log))
	}
	if log[0].Text != "first" {
		t.Errorf("Expected only the first message to be logged, got %q", log[0].Text)
	}
	if transport.calls() != 1 {
		t.Errorf("Expected 1 request, got %d", transport.calls())
	}
}

func TestSubmit_UsesLLMFlag(t *testing.T) {
	transport := &fakeTransport{reply: "ok"}
	s := New(transport)

	s.Submit(context.Background(), "one")
	s.SetUseLLM(true)
	s.Submit(context.Background(), "two")

	if transport.requests[0].UseLLM {
		t.Error("Expected first request without LLM")
	}
	if !transport.requests[1].UseLLM {
		t.Error("Expected second request with LLM")
	}
	if len(s.Log()) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(s.Log()))
	}
}

func TestLog_ReturnsCopy(t *testing.T) {
	s := New(&fakeTransport{reply: "ok"})
	s.Submit(context.Background(), "hello")

	log := s.Log()
	log[0].Text = "changed"

	if s.Log()[0].Text != "hello" {
		t.Error("Expected Log to return a copy")
	}
}
