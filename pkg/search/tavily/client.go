package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultURL = "https://api.tavily.com/search"

// Client is a minimal Tavily search API client.
type Client struct {
	APIKey string
	URL    string
	httpDo *http.Client
}

func New(apiKey, url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		APIKey: apiKey,
		URL:    url,
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Result is one search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Search runs a basic-depth query and returns at most maxResults hits.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if c.APIKey == "" {
		return nil, errors.New("tavily api key is empty")
	}
	data, err := json.Marshal(searchRequest{Query: query, MaxResults: maxResults, SearchDepth: "basic"})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
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
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("tavily http %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}
	if maxResults > 0 && len(out.Results) > maxResults {
		out.Results = out.Results[:maxResults]
	}
	return out.Results, nil
}
