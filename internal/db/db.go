// Package db defines the gateway contract to the external document search
// engine. Consumers depend on the narrow interfaces; the elastic subpackage
// provides the wire implementation.
package db

import (
	"context"
	"encoding/json"

	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// Refresh controls whether a write waits for the change to become visible to
// subsequent searches before returning. A deployment-time setting, not
// negotiated per request.
type Refresh string

const (
	// RefreshWait blocks the write until it is searchable.
	RefreshWait Refresh = "wait_for"
	// RefreshNone returns immediately with no visibility guarantee.
	RefreshNone Refresh = "false"
	// RefreshForce refreshes the affected shards immediately.
	RefreshForce Refresh = "true"
)

// Valid reports whether r is a recognized refresh mode.
func (r Refresh) Valid() bool {
	switch r {
	case RefreshWait, RefreshNone, RefreshForce:
		return true
	}
	return false
}

// Hit is a single engine result: the internal engine key, the stored source
// document, and the relevance score.
type Hit struct {
	Key    string
	Score  float64
	Source json.RawMessage
}

// Gateway is the search engine facade.
type Gateway interface {
	// Search executes a compiled query tree and returns ranked hits.
	Search(ctx context.Context, index string, q query.Query, size, from int) ([]Hit, error)
	// Index writes a document, honoring the configured refresh mode.
	Index(ctx context.Context, index string, doc any) error
	// Delete removes a document by its internal engine key. Returns
	// ErrDocNotFound when the key no longer exists.
	Delete(ctx context.Context, index, key string) error
	// FindByID resolves a logical document id to its hit, or nil when absent.
	FindByID(ctx context.Context, index, id string) (*Hit, error)
}
