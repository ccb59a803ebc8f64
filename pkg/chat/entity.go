package chat

import (
	"errors"
	"fmt"
)

// Request is the payload accepted by the chat endpoint.
type Request struct {
	ModelName    string   `json:"model_name"`
	SystemPrompt string   `json:"system_prompt"`
	Messages     []string `json:"messages"`
	AllowSearch  bool     `json:"allow_search"`
}

// Response carries the final assistant message text.
type Response struct {
	Response string `json:"response"`
}

// ErrModelNotAllowed is matched by every ValidationError.
var ErrModelNotAllowed = errors.New("Model not allowed")

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Model string
}

func (e *ValidationError) Error() string { return ErrModelNotAllowed.Error() }

func (e *ValidationError) Is(target error) bool { return target == ErrModelNotAllowed }

// UpstreamError wraps any failure from the model, the search tool or the agent.
type UpstreamError struct {
	Message string
	Err     error
}

// Error is the summary shown to API callers: message plus the original error text.
func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
