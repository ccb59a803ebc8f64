package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SendsConversationAndTools(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":null,
			"tool_calls":[{"id":"call_1","type":"function","function":{"name":"search","arguments":"{\"query\":\"go\"}"}}]},
			"finish_reason":"tool_calls"}]}`))
	}))
	defer srv.Close()

	search := &schema.ToolInfo{
		Name: "search",
		Desc: "web",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "what to look up", Required: true},
		}),
	}
	cm, err := NewProvider("key", srv.URL).ForModel("llama-3.3-70b-versatile").WithTools([]*schema.ToolInfo{search})
	require.NoError(t, err)
	msgs := []*schema.Message{
		schema.SystemMessage("be brief"),
		schema.UserMessage("hi"),
		{Role: schema.Assistant, ToolCalls: []schema.ToolCall{{ID: "c0", Function: schema.FunctionCall{Name: "search", Arguments: "{}"}}}},
		schema.ToolMessage("[]", "c0"),
	}

	out, err := cm.Generate(context.Background(), msgs)
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "function", got.Messages[2].ToolCalls[0].Type)
	assert.Equal(t, "c0", got.Messages[3].ToolCallID)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "search", got.Tools[0].Function.Name)
	assert.Equal(t, "web", got.Tools[0].Function.Description)
	var params map[string]any
	require.NoError(t, json.Unmarshal(got.Tools[0].Function.Parameters, &params))
	assert.Equal(t, "object", params["type"])
	assert.Equal(t, []any{"query"}, params["required"])
	assert.Contains(t, params["properties"], "query")
	assert.Equal(t, "auto", got.ToolChoice)

	assert.Equal(t, schema.Assistant, out.Role)
	assert.Empty(t, out.Content)
	require.Len(t, out.ToolCalls, 1)
	assert.Equal(t, "call_1", out.ToolCalls[0].ID)
	assert.Equal(t, `{"query":"go"}`, out.ToolCalls[0].Function.Arguments)
}

func TestGenerate_NoToolsOmitsToolChoice(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"4"}}]}`))
	}))
	defer srv.Close()

	out, err := NewProvider("key", srv.URL).ForModel("m").Generate(context.Background(),
		[]*schema.Message{schema.UserMessage("What is 2+2?")})
	require.NoError(t, err)

	assert.Equal(t, "4", out.Content)
	assert.NotContains(t, raw, "tools")
	assert.NotContains(t, raw, "tool_choice")
}

func TestGenerate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewProvider("bad", srv.URL).ForModel("m").Generate(context.Background(),
		[]*schema.Message{schema.UserMessage("hi")})
	require.Error(t, err)
	assert.EqualError(t, err, "groq http 401: Invalid API Key")
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewProvider("key", srv.URL).ForModel("m").Generate(context.Background(), nil)
	assert.EqualError(t, err, "no choices returned by model")
}

func TestGenerate_EmptyKey(t *testing.T) {
	_, err := NewProvider("", "http://127.0.0.1:0").ForModel("m").Generate(context.Background(), nil)
	assert.EqualError(t, err, "groq api key is empty")
}

func TestWithTools_DoesNotMutateReceiver(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		bodies = append(bodies, raw)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	base := NewProvider("key", srv.URL).ForModel("m")
	bound, err := base.WithTools([]*schema.ToolInfo{{Name: "noop", Desc: "does nothing"}})
	require.NoError(t, err)

	_, err = bound.Generate(context.Background(), []*schema.Message{schema.UserMessage("a")})
	require.NoError(t, err)
	_, err = base.Generate(context.Background(), []*schema.Message{schema.UserMessage("b")})
	require.NoError(t, err)
	_, err = base.Generate(context.Background(), []*schema.Message{schema.UserMessage("c")},
		model.WithModel("other"), model.WithTools([]*schema.ToolInfo{{Name: "late"}}))
	require.NoError(t, err)

	require.Len(t, bodies, 3)
	assert.Contains(t, bodies[0], "tools")
	assert.JSONEq(t, `{"type":"object","properties":{}}`, mustJSON(t, bodies[0]["tools"].([]any)[0].(map[string]any)["function"].(map[string]any)["parameters"]))
	assert.NotContains(t, bodies[1], "tools")
	assert.Equal(t, "m", bodies[1]["model"])
	assert.Equal(t, "other", bodies[2]["model"])
	assert.Contains(t, bodies[2], "tools")
}

func TestStream_SingleChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"",
			"tool_calls":[{"type":"function","function":{"name":"search","arguments":"{}"}}]}}]}`))
	}))
	defer srv.Close()

	sr, err := NewProvider("key", srv.URL).ForModel("m").Stream(context.Background(),
		[]*schema.Message{schema.UserMessage("hi")})
	require.NoError(t, err)
	defer sr.Close()

	msg, err := sr.Recv()
	require.NoError(t, err)
	require.Len(t, msg.ToolCalls, 1)
	assert.Contains(t, msg.ToolCalls[0].ID, "call_", "missing call ids are generated")
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewProvider("key", srv.URL).Ping(context.Background()))
	assert.Error(t, NewProvider("other", srv.URL).Ping(context.Background()))
	assert.Error(t, NewProvider("", srv.URL).Ping(context.Background()))
}
