package opensearch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kailas-cloud/facetdex/internal/db"
)

const infoBody = `{"version":{"number":"2.11.0","distribution":"opensearch"}}`

type recorded struct {
	method string
	path   string
	query  map[string]string
	body   string
}

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			_, _ = io.WriteString(w, infoBody)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	s, err := NewStore(Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

// --- client.go tests ---

func TestNewStore_NoAddresses(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addresses")
	}
}

func TestPing_Success(t *testing.T) {
	var path string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, `{"status":"green"}`)
	})

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/_cluster/health" {
		t.Errorf("path = %q", path)
	}
}

func TestPing_ErrorStatus(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"type":"cluster_block_exception","reason":"blocked"}}`)
	})

	err := s.Ping(context.Background())
	var re *db.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if re.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d", re.Status)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpClusterHealth {
		t.Errorf("expected db.Error with Op %q, got %v", db.OpClusterHealth, err)
	}
}

func TestWaitForReady_Eventually(t *testing.T) {
	var calls atomic.Int32
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"status":"yellow"}`)
	})

	if err := s.WaitForReady(context.Background(), 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := s.WaitForReady(context.Background(), 300*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

// --- search.go tests ---

func TestSearch_BodyAndParams(t *testing.T) {
	var got recorded
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = recorded{
			method: r.Method,
			path:   r.URL.Path,
			query: map[string]string{
				"from":    r.URL.Query().Get("from"),
				"size":    r.URL.Query().Get("size"),
				"explain": r.URL.Query().Get("explain"),
				"_source": r.URL.Query().Get("_source"),
				"q":       r.URL.Query().Get("q"),
			},
			body: string(b),
		}
		_, _ = io.WriteString(w, `{"took":3,"hits":{"total":{"value":0},"hits":[]}}`)
	})

	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index:   "bbuy_products",
		Body:    []byte(`{"query":{"match_all":{}}}`),
		From:    intPtr(5),
		Size:    intPtr(20),
		Explain: boolPtr(true),
		Source:  []string{"name", "sku"},
		Q:       "name:camera",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.method != http.MethodPost {
		t.Errorf("method = %q", got.method)
	}
	if got.path != "/bbuy_products/_search" {
		t.Errorf("path = %q", got.path)
	}
	want := map[string]string{"from": "5", "size": "20", "explain": "true", "_source": "name,sku", "q": "name:camera"}
	for k, v := range want {
		if got.query[k] != v {
			t.Errorf("param %s = %q, want %q", k, got.query[k], v)
		}
	}
	if got.body != `{"query":{"match_all":{}}}` {
		t.Errorf("body = %q", got.body)
	}
	if res.Status != http.StatusOK || !strings.Contains(string(res.Body), `"took":3`) {
		t.Errorf("result = %d %s", res.Status, res.Body)
	}
}

func TestSearch_OmitsUnsetParams(t *testing.T) {
	var rawQuery string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"hits":{"hits":[]}}`)
	})

	if _, err := s.Search(context.Background(), &db.SearchQuery{Index: "idx", Body: []byte(`{}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []string{"from=", "size=", "explain=", "_source=", "q="} {
		if strings.Contains(rawQuery, p) {
			t.Errorf("unexpected param %q in %q", p, rawQuery)
		}
	}
}

func TestSearch_ErrorResponse(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"parsing_exception","reason":"bad query"},"status":400}`)
	})

	_, err := s.Search(context.Background(), &db.SearchQuery{Index: "idx", Body: []byte(`{}`)})

	var re *db.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if re.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", re.Status)
	}
	if !strings.Contains(err.Error(), "parsing_exception: bad query") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestSearch_TransportError(t *testing.T) {
	s, err := NewStore(Config{Addresses: []string{"http://127.0.0.1:1"}, DialTimeout: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, err = s.Search(context.Background(), &db.SearchQuery{Index: "idx"})

	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Fatalf("expected db.Error with Op %q, got %v", db.OpSearch, err)
	}
}
