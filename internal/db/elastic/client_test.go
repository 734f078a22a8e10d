package elastic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// newTestClient starts a fake engine endpoint and a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The v8 client rejects responses without the product header.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{Addresses: []string{srv.URL}, Refresh: db.RefreshWait})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRejectsUnknownRefresh(t *testing.T) {
	_, err := NewClient(Config{Addresses: []string{"http://localhost:9200"}, Refresh: "sometimes"})
	if err == nil {
		t.Fatal("expected error for invalid refresh mode")
	}
}

func TestSearchParsesHits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/courses/_search") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("size"); got != "10" {
			t.Errorf("size = %s, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"k1","_score":3.2,"_source":{"id":"c1"}},
			{"_id":"k2","_score":null,"_source":{"id":"c2"}}
		]}}`))
	})

	hits, err := c.Search(context.Background(), "courses", query.MatchAll{}, 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Key != "k1" || hits[0].Score != 3.2 {
		t.Errorf("hit 0 = %+v", hits[0])
	}
	if hits[1].Score != 0 {
		t.Errorf("null score should parse as 0, got %v", hits[1].Score)
	}
}

func TestSearchSurfacesEngineErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := c.Search(context.Background(), "courses", query.MatchAll{}, 10, 0)
	if err == nil {
		t.Fatal("expected engine failure to propagate")
	}
}

func TestIndexSendsRefreshMode(t *testing.T) {
	var refresh string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		refresh = r.URL.Query().Get("refresh")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	if err := c.Index(context.Background(), "courses", map[string]string{"id": "c1"}); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if refresh != "wait_for" {
		t.Errorf("refresh = %q, want wait_for", refresh)
	}
}

func TestDeleteMissingKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	err := c.Delete(context.Background(), "courses", "k1")
	if !errors.Is(err, db.ErrDocNotFound) {
		t.Fatalf("err = %v, want ErrDocNotFound", err)
	}
}

func TestFindByIDAbsent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
	})

	hit, err := c.FindByID(context.Background(), "courses", "missing")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if hit != nil {
		t.Errorf("hit = %+v, want nil for absent id", hit)
	}
}
