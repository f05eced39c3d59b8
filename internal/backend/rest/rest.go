// Package rest implements the backend ports against the fintrack REST
// API. The client is read-only and tolerant of the several response
// envelopes the API has shipped over time.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

const defaultTimeout = 15 * time.Second

// Client talks to the fintrack REST backend.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// New creates a client for the given base URL. token, when non-empty,
// is sent as a bearer credential on every request.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTransactions fetches all transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.list(ctx, "/transactions", "transactions", &out); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	if err := c.list(ctx, "/categories", "categories", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// ListGoals fetches all savings goals.
func (c *Client) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	var out []core.SavingsGoal
	if err := c.list(ctx, "/api/savings-goals", "savingsGoals", &out); err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	return out, nil
}

// list fetches path and decodes its enveloped collection into out,
// which must be a pointer to a slice. resource is the key the HAL
// envelope nests the collection under.
func (c *Client) list(ctx context.Context, path, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the error carries context without
		// buffering an arbitrarily large error page.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	items, err := unwrapCollection(body, resource)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(items, out); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	return nil
}

// unwrapCollection extracts the item array from any of the envelope
// shapes the backend produces: a bare array, a paginated {content},
// a {data} wrapper, or a HAL {_embedded:{<resource>}} document. An
// envelope with none of these yields an empty collection rather than
// an error.
func unwrapCollection(body []byte, resource string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}

	var envelope struct {
		Content  json.RawMessage            `json:"content"`
		Data     json.RawMessage            `json:"data"`
		Embedded map[string]json.RawMessage `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Content) > 0 {
		return envelope.Content, nil
	}
	if len(envelope.Data) > 0 {
		return envelope.Data, nil
	}
	if items, ok := envelope.Embedded[resource]; ok {
		return items, nil
	}
	return json.RawMessage("[]"), nil
}
