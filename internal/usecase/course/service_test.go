package course

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain"
	"github.com/crux-bphc/chrono-search/internal/domain/search/params"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

const rawCourse = `{
	"id": "c1",
	"code": "CS F111",
	"name": "Computer Programming",
	"sections": [{
		"id": "s1",
		"courseId": "c1",
		"type": "L",
		"number": 1,
		"instructors": ["Rao"],
		"roomTime": ["L1:MON:08:09"],
		"createdAt": "2024-08-01T10:00:00Z"
	}],
	"midsemStartTime": null,
	"midsemEndTime": null,
	"compreStartTime": null,
	"compreEndTime": null,
	"archived": false,
	"acadYear": 2024,
	"semester": 1,
	"createdAt": "2024-08-01T10:00:00Z"
}`

func TestAddEnrichesAndWrites(t *testing.T) {
	gw := &mockGateway{}
	svc := newService(t, gw)

	c, err := svc.Add(context.Background(), json.RawMessage(rawCourse))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if c.Dept != "CS" {
		t.Errorf("dept = %q, want CS", c.Dept)
	}
	if want := []string{"08:09"}; !reflect.DeepEqual(c.Sections[0].Time, want) {
		t.Errorf("time = %v, want %v", c.Sections[0].Time, want)
	}
	if c.Sections[0].RoomTime != nil {
		t.Error("roomTime should be dropped from the stored document")
	}
	if len(gw.indexed) != 1 {
		t.Fatalf("indexed %d documents, want 1", len(gw.indexed))
	}
}

func TestAddRejectsInvalidDocument(t *testing.T) {
	gw := &mockGateway{}
	svc := newService(t, gw)

	_, err := svc.Add(context.Background(), json.RawMessage(`{"id":"c1"}`))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(gw.indexed) != 0 {
		t.Error("invalid document must not be written")
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	gw := &mockGateway{
		findByIDFn: func(_ context.Context, _ string, id string) (*db.Hit, error) {
			return &db.Hit{Key: "k1", Source: json.RawMessage(`{"id":"c1"}`)}, nil
		},
	}
	svc := newService(t, gw)

	_, err := svc.Add(context.Background(), json.RawMessage(rawCourse))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	if len(gw.indexed) != 0 {
		t.Error("duplicate must leave the index unchanged")
	}
}

func TestSearchRejectsEmptyParameters(t *testing.T) {
	svc := newService(t, &mockGateway{})

	_, err := svc.Search(context.Background(), params.Course{})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
}

func TestSearchReturnsRankedHits(t *testing.T) {
	gw := &mockGateway{
		searchFn: func(_ context.Context, index string, q query.Query, size, from int) ([]db.Hit, error) {
			if index != domain.CourseIndex {
				t.Errorf("index = %q", index)
			}
			if size != 10 || from != 0 {
				t.Errorf("pagination = (%d, %d), want (10, 0)", size, from)
			}
			return []db.Hit{
				{Key: "k1", Score: 4.2, Source: json.RawMessage(`{"id":"c1"}`)},
				{Key: "k2", Score: 1.1, Source: json.RawMessage(`{"id":"c2"}`)},
			}, nil
		},
	}
	svc := newService(t, gw)

	hits, err := svc.Search(context.Background(), params.Course{Query: "cs"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 || hits[0].Score != 4.2 {
		t.Errorf("hits = %+v", hits)
	}
}

func TestRemoveMissingCourse(t *testing.T) {
	svc := newService(t, &mockGateway{})

	err := svc.Remove(context.Background(), "never-added")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveDeletesByInternalKey(t *testing.T) {
	var deletedKey string
	gw := &mockGateway{
		findByIDFn: func(_ context.Context, _ string, id string) (*db.Hit, error) {
			return &db.Hit{Key: "internal-7", Source: json.RawMessage(`{"id":"c1"}`)}, nil
		},
		deleteFn: func(_ context.Context, _ string, key string) error {
			deletedKey = key
			return nil
		},
	}
	svc := newService(t, gw)

	if err := svc.Remove(context.Background(), "c1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if deletedKey != "internal-7" {
		t.Errorf("deleted key = %q, want the engine's internal key", deletedKey)
	}
}

func TestRemoveRacedDelete(t *testing.T) {
	gw := &mockGateway{
		findByIDFn: func(_ context.Context, _ string, id string) (*db.Hit, error) {
			return &db.Hit{Key: "k1"}, nil
		},
		deleteFn: func(_ context.Context, _, _ string) error {
			return db.ErrDocNotFound
		},
	}
	svc := newService(t, gw)

	err := svc.Remove(context.Background(), "c1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound when the key vanished", err)
	}
}
