package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/artem13815/agentchat/pkg/chat"
)

// DefaultBackendURL is where the form posts unless configured otherwise.
const DefaultBackendURL = "http://localhost:8000/chat"

// StatusError is returned when the backend answers with anything but 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("backend returned status %d", e.Code) }

// TransportError covers failures to reach the backend or to read its reply.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// BackendClient performs one chat call per Ask.
type BackendClient struct {
	URL    string
	httpDo *http.Client
}

func NewBackendClient(url string) *BackendClient {
	if url == "" {
		url = DefaultBackendURL
	}
	// Agent turns with search can take a while; the backend itself sets no deadline.
	return &BackendClient{URL: url, httpDo: &http.Client{Timeout: 5 * time.Minute}}
}

func (b *BackendClient) Ask(ctx context.Context, req chat.Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.URL, bytes.NewReader(data))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpDo.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}
	var out chat.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode backend response: %w", err)}
	}
	return out.Response, nil
}
