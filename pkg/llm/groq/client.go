package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Provider hands out Clients bound to a model and sharing one credential.
type Provider struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func NewProvider(apiKey, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		APIKey:  apiKey,
		BaseURL: baseURL,
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ForModel implements llm.Factory.
func (p *Provider) ForModel(modelID string) model.ToolCallingChatModel {
	return &Client{APIKey: p.APIKey, BaseURL: p.BaseURL, Model: modelID, httpDo: p.httpDo}
}

// Ping lists models to confirm the API is reachable and the key is accepted.
func (p *Provider) Ping(ctx context.Context) error {
	if p.APIKey == "" {
		return errors.New("groq api key is empty")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/models", nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	resp, err := p.httpDo.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

// Client is a minimal Groq (OpenAI-compatible) chat completions client.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	httpDo  *http.Client
	tools   []*schema.ToolInfo
}

var _ model.ToolCallingChatModel = (*Client)(nil)

// WithTools returns a copy of c that offers tools on every call.
func (c *Client) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	bound := *c
	bound.tools = tools
	return &bound, nil
}

type message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type functionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type chatCompletionsRequest struct {
	Model      string    `json:"model"`
	Messages   []message `json:"messages"`
	Tools      []toolDef `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type chatChoice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends the conversation and the bound tools and returns the
// assistant message of the first choice. model.WithTools and model.WithModel
// override what the client is bound to.
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if c.APIKey == "" {
		return nil, errors.New("groq api key is empty")
	}
	options := model.GetCommonOptions(&model.Options{Model: &c.Model, Tools: c.tools}, opts...)
	defs, err := toolDefs(options.Tools)
	if err != nil {
		return nil, err
	}
	reqBody := chatCompletionsRequest{
		Model:    *options.Model,
		Messages: toWire(input),
		Tools:    defs,
	}
	if len(reqBody.Tools) > 0 {
		reqBody.ToolChoice = "auto"
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}
	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode groq response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("no choices returned by model")
	}
	return fromWire(out.Choices[0].Message), nil
}

// Stream is served by a single Generate call; Groq streaming is not used.
func (c *Client) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := c.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toolDefs(tools []*schema.ToolInfo) ([]toolDef, error) {
	defs := make([]toolDef, 0, len(tools))
	for _, t := range tools {
		params := json.RawMessage(`{"type":"object","properties":{}}`)
		sc, err := t.ParamsOneOf.ToOpenAPIV3()
		if err != nil {
			return nil, fmt.Errorf("tool %s parameters: %w", t.Name, err)
		}
		if sc != nil {
			if params, err = json.Marshal(sc); err != nil {
				return nil, fmt.Errorf("tool %s parameters: %w", t.Name, err)
			}
		}
		defs = append(defs, toolDef{
			Type:     "function",
			Function: functionDef{Name: t.Name, Description: t.Desc, Parameters: params},
		})
	}
	return defs, nil
}

func toWire(messages []*schema.Message) []message {
	out := make([]message, 0, len(messages))
	for _, m := range messages {
		wm := message{Role: string(m.Role), Content: m.Content, ToolCallID: m.ToolCallID}
		for _, tc := range m.ToolCalls {
			typ := tc.Type
			if typ == "" {
				typ = "function"
			}
			wm.ToolCalls = append(wm.ToolCalls, toolCall{
				ID:       tc.ID,
				Type:     typ,
				Function: functionCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
			})
		}
		out = append(out, wm)
	}
	return out
}

func fromWire(m message) *schema.Message {
	role := schema.RoleType(m.Role)
	if role == "" {
		role = schema.Assistant
	}
	out := &schema.Message{Role: role, Content: m.Content}
	for _, tc := range m.ToolCalls {
		id := tc.ID
		if id == "" {
			id = "call_" + uuid.NewString()
		}
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			ID:       id,
			Type:     tc.Type,
			Function: schema.FunctionCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
		})
	}
	return out
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("groq http %d: %s", resp.StatusCode, body.Error.Message)
	}
	return fmt.Errorf("groq http %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
}
