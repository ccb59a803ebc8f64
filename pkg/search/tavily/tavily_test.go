package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_CapsResults(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"query":"go","results":[
			{"title":"a","url":"https://a","content":"A"},
			{"title":"b","url":"https://b","content":"B"},
			{"title":"c","url":"https://c","content":"C"}]}`))
	}))
	defer srv.Close()

	res, err := New("tvly", srv.URL).Search(context.Background(), "go", 2)
	require.NoError(t, err)

	assert.Equal(t, "go", got.Query)
	assert.Equal(t, 2, got.MaxResults)
	assert.Equal(t, "basic", got.SearchDepth)
	require.Len(t, res, 2)
	assert.Equal(t, "https://b", res[1].URL)
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":{"error":"Unauthorized"}}`))
	}))
	defer srv.Close()

	_, err := New("bad", srv.URL).Search(context.Background(), "go", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tavily http 401")
}

func TestSearch_EmptyKey(t *testing.T) {
	_, err := New("", "").Search(context.Background(), "go", 2)
	assert.EqualError(t, err, "tavily api key is empty")
}

type fakeSearcher struct {
	query      string
	maxResults int
	results    []Result
	err        error
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults int) ([]Result, error) {
	f.query, f.maxResults = query, maxResults
	return f.results, f.err
}

func TestTool_Info(t *testing.T) {
	info, err := NewTool(&fakeSearcher{}, 2).Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ToolName, info.Name)
	assert.NotEmpty(t, info.Desc)
	params, err := info.ParamsOneOf.ToOpenAPIV3()
	require.NoError(t, err)
	assert.Equal(t, []string{"query"}, params.Required)
	assert.Contains(t, params.Properties, "query")
}

func TestTool_InvokableRun(t *testing.T) {
	s := &fakeSearcher{results: []Result{{Title: "Go", URL: "https://go.dev", Content: "The Go language"}}}
	tl := NewTool(s, 2)

	out, err := tl.InvokableRun(context.Background(), `{"query":"golang"}`)
	require.NoError(t, err)

	assert.Equal(t, "golang", s.query)
	assert.Equal(t, 2, s.maxResults)
	assert.JSONEq(t, `[{"title":"Go","url":"https://go.dev","content":"The Go language"}]`, out)
}

func TestTool_InvokableRun_Errors(t *testing.T) {
	tl := NewTool(&fakeSearcher{err: errors.New("boom")}, 2)

	_, err := tl.InvokableRun(context.Background(), `not json`)
	assert.ErrorContains(t, err, "invalid search arguments")

	_, err = tl.InvokableRun(context.Background(), `{"query":"  "}`)
	assert.EqualError(t, err, "search query is required")

	_, err = tl.InvokableRun(context.Background(), `{"query":"go"}`)
	assert.EqualError(t, err, "boom")
}
