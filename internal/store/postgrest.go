package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/supabase-community/postgrest-go"
)

// Client talks to a Supabase/PostgREST store. It is constructed once at
// startup and passed by reference into every component that needs it.
type Client struct {
	rest *postgrest.Client

	// mu serializes RPC calls: postgrest-go reports Rpc failures through
	// the shared ClientError field on the client object.
	mu sync.Mutex
}

// NewClient builds a store client for the given Supabase project URL and
// API key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("store: base URL and API key are required")
	}

	rest := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        apiKey,
		"Authorization": "Bearer " + apiKey,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("store: creating postgrest client: %w", rest.ClientError)
	}
	return &Client{rest: rest}, nil
}

// SelectEq implements Store. postgrest-go's Execute has no context variant;
// the call is bounded only by the underlying HTTP client.
func (c *Client) SelectEq(_ context.Context, table, columns string, filters map[string]string) ([]map[string]any, error) {
	q := c.rest.From(table).Select(columns, "", false)
	for col, val := range filters {
		q = q.Eq(col, val)
	}

	data, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("store: selecting from %s: %w", table, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("store: decoding rows from %s: %w", table, err)
	}
	return rows, nil
}

// CallRPC implements Store. postgrest-go's Rpc has no context variant; the
// call is bounded only by the underlying HTTP client.
func (c *Client) CallRPC(_ context.Context, fn string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.rest.Rpc(fn, "", params)
	if c.rest.ClientError != nil {
		err := c.rest.ClientError
		c.rest.ClientError = nil
		return nil, fmt.Errorf("store: rpc %s: %w", fn, err)
	}
	return json.RawMessage(res), nil
}
