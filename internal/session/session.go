package session

import (
	"context"
	"strings"
	"sync"
)

// TransportFailureReply is appended when the assistant could not be reached.
const TransportFailureReply = "Sorry, I couldn't reach the campus assistant. Please try again."

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

type Entry struct {
	Speaker Speaker
	Text    string
}

// Transport sends one user turn to the campus assistant.
type Transport interface {
	Query(ctx context.Context, request QueryRequest) (*QueryResponse, error)
}

// Session is a single conversation log with at most one request in flight.
type Session struct {
	transport Transport

	mu      sync.Mutex
	log     []Entry
	pending bool
	useLLM  bool
}

func New(transport Transport) *Session {
	return &Session{
		transport: transport,
	}
}

func (s *Session) SetUseLLM(useLLM bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useLLM = useLLM
}

func (s *Session) UseLLM() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useLLM
}

// Submit sends text as the next user turn and blocks until the reply is logged.
// It returns false without side effects when text is blank or a request is already pending.
func (s *Session) Submit(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return false
	}
	s.log = append(s.log, Entry{Speaker: SpeakerUser, Text: text})
	s.pending = true
	request := QueryRequest{Message: text, UseLLM: s.useLLM}
	s.mu.Unlock()

	reply := TransportFailureReply
	response, err := s.transport.Query(ctx, request)
	if err == nil && response != nil {
		reply = response.Reply
	}

	s.mu.Lock()
	s.log = append(s.log, Entry{Speaker: SpeakerAssistant, Text: reply})
	s.pending = false
	s.mu.Unlock()

	return true
}

// Log returns a copy of the conversation so far.
func (s *Session) Log() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.log))
	copy(out, s.log)
	return out
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
