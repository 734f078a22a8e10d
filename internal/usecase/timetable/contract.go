package timetable

import (
	"context"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// Gateway is the index access contract for the timetable collection. It also
// reads the course collection for reference enrichment.
type Gateway interface {
	Search(ctx context.Context, index string, q query.Query, size, from int) ([]db.Hit, error)
	Index(ctx context.Context, index string, doc any) error
	Delete(ctx context.Context, index, key string) error
	FindByID(ctx context.Context, index, id string) (*db.Hit, error)
}

// Validator checks raw timetable documents against the structural schema.
type Validator interface {
	ValidateTimetable(raw []byte) error
}
