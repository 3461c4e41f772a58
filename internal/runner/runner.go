// Package runner calls the external code-execution API. No client library
// exists for it; the stdlib HTTP client is used directly.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codelab-edu/codelab-api/pkg/config"
)

// Request describes one execution: a single source file plus stdin.
type Request struct {
	Language string `json:"language"`
	Stdin    string `json:"stdin"`
	Files    []File `json:"files"`
}

// File is a named source file sent to the runner.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Result is the runner's execution outcome.
type Result struct {
	Status        string  `json:"status"`
	Exception     *string `json:"exception"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	ExecutionTime int     `json:"executionTime"`
}

// Client calls the hosted compiler API.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	host       string
}

// New constructs a runner client.
func New(cfg config.RunnerConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
	}
}

// Run executes the code and returns the runner's result. Transport and
// non-200 failures are returned as errors; execution failures (non-zero
// exit, stderr output) come back inside the Result.
func (c *Client) Run(ctx context.Context, language, code, stdin string) (*Result, error) {
	payload := Request{
		Language: language,
		Stdin:    stdin,
		Files: []File{
			{Name: fmt.Sprintf("index.%s", language), Content: code},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode runner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build runner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call runner: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode runner response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runner returned status %d", resp.StatusCode)
	}

	return &result, nil
}
