// Package elastic implements the db.Gateway contract over Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// Config holds the engine connection settings.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Refresh   db.Refresh
}

// Client is the Elasticsearch-backed gateway. Safe for concurrent use.
type Client struct {
	es      *elasticsearch.Client
	refresh db.Refresh
}

var _ db.Gateway = (*Client)(nil)

// NewClient creates an Elasticsearch gateway.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.Refresh.Valid() {
		return nil, fmt.Errorf("invalid refresh mode %q", cfg.Refresh)
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Client{es: es, refresh: cfg.Refresh}, nil
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.String())
	}
	return nil
}

// WaitForReady polls the engine until it responds or the timeout elapses.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var err error
	for time.Now().Before(deadline) {
		if err = c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return fmt.Errorf("engine not ready after %s: %w", timeout, err)
}

// Search executes a compiled query tree and returns ranked hits.
func (c *Client) Search(ctx context.Context, index string, q query.Query, size, from int) ([]db.Hit, error) {
	body, err := json.Marshal(map[string]any{"query": q})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
		c.es.Search.WithSize(size),
		c.es.Search.WithFrom(from),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", index, res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Score  *float64        `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]db.Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hit := db.Hit{Key: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Index writes a document with the configured refresh mode.
func (c *Client) Index(ctx context.Context, index string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := c.es.Index(
		index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithRefresh(string(c.refresh)),
	)
	if err != nil {
		return fmt.Errorf("index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", index, res.String())
	}
	return nil
}

// Delete removes a document by its internal engine key.
func (c *Client) Delete(ctx context.Context, index, key string) error {
	res, err := c.es.Delete(
		index,
		key,
		c.es.Delete.WithContext(ctx),
		c.es.Delete.WithRefresh(string(c.refresh)),
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", index, key, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return db.ErrDocNotFound
	}
	if res.IsError() {
		return fmt.Errorf("delete %s/%s: %s", index, key, res.String())
	}
	return nil
}

// FindByID resolves a logical document id via an exact-term lookup.
func (c *Client) FindByID(ctx context.Context, index, id string) (*db.Hit, error) {
	hits, err := c.Search(ctx, index, query.Term{Field: "id", Value: id}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return &hits[0], nil
}
