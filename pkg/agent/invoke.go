package agent

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/artem13815/agentchat/pkg/llm"
	"github.com/artem13815/agentchat/pkg/search/tavily"
)

// Invoker builds a fresh agent for every request and returns its final answer.
type Invoker struct {
	models     llm.Factory
	searcher   tavily.Searcher
	maxResults int
	maxSteps   int

	newAgent func(ctx context.Context, cm model.ToolCallingChatModel, tools []tool.InvokableTool, systemPrompt string) (Runner, error)
}

// NewInvoker wires the model factory and the search backend. maxResults caps
// every search the tool performs.
func NewInvoker(models llm.Factory, searcher tavily.Searcher, maxResults, maxSteps int) *Invoker {
	inv := &Invoker{models: models, searcher: searcher, maxResults: maxResults, maxSteps: maxSteps}
	inv.newAgent = func(ctx context.Context, cm model.ToolCallingChatModel, tools []tool.InvokableTool, systemPrompt string) (Runner, error) {
		return NewReactRunner(ctx, cm, tools, systemPrompt, inv.maxSteps)
	}
	return inv
}

// Invoke runs one agent turn over messages and returns the content of the
// last assistant message. No retries are attempted.
func (i *Invoker) Invoke(ctx context.Context, modelID string, messages []string, allowSearch bool, systemPrompt string) (string, error) {
	cm := i.models.ForModel(modelID)

	tools := []tool.InvokableTool{}
	if allowSearch {
		tools = append(tools, tavily.NewTool(i.searcher, i.maxResults))
	}

	runner, err := i.newAgent(ctx, cm, tools, systemPrompt)
	if err != nil {
		return "", err
	}

	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		input = append(input, schema.UserMessage(m))
	}
	out, err := runner.Run(ctx, input)
	if err != nil {
		return "", err
	}
	return LastAssistantContent(out)
}
