package agent

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

// DefaultMaxSteps bounds the number of graph steps (model and tool nodes) in one run.
const DefaultMaxSteps = 25

var (
	ErrNoAssistantResponse = errors.New("agent returned no assistant message")
	ErrStepLimit           = errors.New("agent reached step limit without a final answer")
)

// Runner runs one conversational turn and returns the full transcript:
// the input followed by every assistant and tool message produced.
type Runner interface {
	Run(ctx context.Context, input []*schema.Message) ([]*schema.Message, error)
}

// ReactRunner drives an eino ReAct agent and records its transcript.
type ReactRunner struct {
	agent        *react.Agent
	systemPrompt string
	maxSteps     int
}

// NewReactRunner builds a ReAct agent over cm and tools. Tool failures and
// calls to unknown tools are reported back to the model as tool output
// instead of aborting the run.
func NewReactRunner(ctx context.Context, cm model.ToolCallingChatModel, tools []tool.InvokableTool, systemPrompt string, maxSteps int) (*ReactRunner, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	base := make([]tool.BaseTool, 0, len(tools))
	for _, t := range tools {
		base = append(base, toolErrorsAsOutput{t})
	}
	a, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: cm,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools:               base,
			ExecuteSequentially: true,
			UnknownToolsHandler: func(_ context.Context, name, _ string) (string, error) {
				return "error: unknown tool " + name, nil
			},
		},
		MaxStep: maxSteps,
	})
	if err != nil {
		return nil, fmt.Errorf("build react agent: %w", err)
	}
	return &ReactRunner{agent: a, systemPrompt: systemPrompt, maxSteps: maxSteps}, nil
}

// Run prepends the system prompt when one is set.
func (r *ReactRunner) Run(ctx context.Context, input []*schema.Message) ([]*schema.Message, error) {
	transcript := make([]*schema.Message, 0, len(input)+1)
	if r.systemPrompt != "" {
		transcript = append(transcript, schema.SystemMessage(r.systemPrompt))
	}
	transcript = append(transcript, input...)

	opt, future := react.WithMessageFuture()
	if _, err := r.agent.Generate(ctx, transcript, opt); err != nil {
		if errors.Is(err, compose.ErrExceedMaxSteps) {
			return nil, fmt.Errorf("%w (%d steps)", ErrStepLimit, r.maxSteps)
		}
		return nil, rootCause(err)
	}

	iter := future.GetMessages()
	for {
		msg, ok, err := iter.Next()
		if err != nil {
			return nil, rootCause(err)
		}
		if !ok {
			return transcript, nil
		}
		transcript = append(transcript, msg)
	}
}

type toolErrorsAsOutput struct {
	tool.InvokableTool
}

func (t toolErrorsAsOutput) InvokableRun(ctx context.Context, args string, opts ...tool.Option) (string, error) {
	out, err := t.InvokableTool.InvokableRun(ctx, args, opts...)
	if err != nil {
		return "error: " + err.Error(), nil
	}
	return out, nil
}

var composePkg = reflect.TypeOf(compose.ToolsNodeConfig{}).PkgPath()

// rootCause strips the graph runtime's node-path wrappers so callers see the
// error raised by the model or tool itself.
func rootCause(err error) error {
	for {
		t := reflect.TypeOf(err)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		inner := errors.Unwrap(err)
		if t.PkgPath() != composePkg || inner == nil {
			return err
		}
		err = inner
	}
}

// LastAssistantContent returns the content of the last assistant-authored message.
func LastAssistantContent(messages []*schema.Message) (string, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if m := messages[i]; m != nil && m.Role == schema.Assistant {
			return m.Content, nil
		}
	}
	return "", ErrNoAssistantResponse
}
