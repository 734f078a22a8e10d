package course

import (
	"context"
	"testing"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
	"github.com/crux-bphc/chrono-search/internal/schema"
)

// mockGateway implements the Gateway contract with overridable functions.
type mockGateway struct {
	searchFn   func(ctx context.Context, index string, q query.Query, size, from int) ([]db.Hit, error)
	indexFn    func(ctx context.Context, index string, doc any) error
	deleteFn   func(ctx context.Context, index, key string) error
	findByIDFn func(ctx context.Context, index, id string) (*db.Hit, error)

	indexed []any // documents passed to Index
}

func (m *mockGateway) Search(
	ctx context.Context, index string, q query.Query, size, from int,
) ([]db.Hit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, q, size, from)
	}
	return nil, nil
}

func (m *mockGateway) Index(ctx context.Context, index string, doc any) error {
	m.indexed = append(m.indexed, doc)
	if m.indexFn != nil {
		return m.indexFn(ctx, index, doc)
	}
	return nil
}

func (m *mockGateway) Delete(ctx context.Context, index, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, key)
	}
	return nil
}

func (m *mockGateway) FindByID(ctx context.Context, index, id string) (*db.Hit, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, index, id)
	}
	return nil, nil
}

func newService(t *testing.T, gw *mockGateway) *Service {
	t.Helper()
	v, err := schema.New()
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return New(gw, v)
}
