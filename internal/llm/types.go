package llm

import "errors"

// ErrEmptyResponse is returned when a model answers without any text.
var ErrEmptyResponse = errors.New("empty model response")

type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type Response struct {
	Content    string
	StopReason string
}
