package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const (
	ToolName = "tavily_search_results_json"
	toolDesc = "A search engine optimized for comprehensive, accurate, and trusted results. " +
		"Useful for when you need to answer questions about current events. Input should be a search query."
)

// Searcher is the part of Client the tool depends on.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Tool exposes Tavily search to the agent as an invokable tool.
type Tool struct {
	searcher   Searcher
	MaxResults int
}

var _ tool.InvokableTool = (*Tool)(nil)

func NewTool(s Searcher, maxResults int) *Tool {
	return &Tool{searcher: s, MaxResults: maxResults}
}

func (t *Tool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolName,
		Desc: toolDesc,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "search query to look up", Required: true},
		}),
	}, nil
}

type toolArgs struct {
	Query string `json:"query"`
}

type toolHit struct {
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// InvokableRun parses {"query": ...}, searches and returns the hits as a JSON array.
func (t *Tool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args toolArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("invalid search arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", errors.New("search query is required")
	}
	results, err := t.searcher.Search(ctx, args.Query, t.MaxResults)
	if err != nil {
		return "", err
	}
	hits := make([]toolHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, toolHit{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	out, err := json.Marshal(hits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
