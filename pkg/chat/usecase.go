package chat

import (
	"context"

	"github.com/artem13815/agentchat/pkg/logger"
)

// FailureMessage prefixes every UpstreamError summary.
const FailureMessage = "Failed to get AI response."

// Invoker runs one agent turn and returns the last assistant message.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, messages []string, allowSearch bool, systemPrompt string) (string, error)
}

// ModelPolicy decides which model identifiers are accepted.
type ModelPolicy interface {
	IsModelAllowed(name string) bool
}

// UseCase describes the chat application scenario.
type UseCase interface {
	Chat(ctx context.Context, req Request) (Response, error)
}

type service struct {
	invoker Invoker
	models  ModelPolicy
	log     logger.Logger
}

func NewService(invoker Invoker, models ModelPolicy, log logger.Logger) UseCase {
	return &service{invoker: invoker, models: models, log: log}
}

func (s *service) Chat(ctx context.Context, req Request) (Response, error) {
	s.log.Info("received chat request", "model", req.ModelName, "allow_search", req.AllowSearch, "messages", len(req.Messages))

	if !s.models.IsModelAllowed(req.ModelName) {
		s.log.Warn("model not allowed", "model", req.ModelName)
		return Response{}, &ValidationError{Model: req.ModelName}
	}

	answer, err := s.invoker.Invoke(ctx, req.ModelName, req.Messages, req.AllowSearch, req.SystemPrompt)
	if err != nil {
		s.log.Error("agent invocation failed", "model", req.ModelName, "error", err)
		return Response{}, &UpstreamError{Message: FailureMessage, Err: err}
	}

	s.log.Info("agent responded", "model", req.ModelName, "response_chars", len(answer))
	return Response{Response: answer}, nil
}
