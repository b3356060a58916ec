package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func uploadRouter(store *fakeIdempotencyStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.With(Idempotency(store, nil)).Post("/api/v1/stockpiles/{stockID}/inventory", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})
	return r
}

func postUpload(handler http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stockpiles/7/inventory", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	hits := 0
	handler := uploadRouter(store, &hits)

	first := postUpload(handler, "key-1", "payload")
	if first.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", first.Code)
	}

	second := postUpload(handler, "key-1", "payload")
	if second.Code != http.StatusOK {
		t.Fatalf("replay: status = %d", second.Code)
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	hits := 0
	handler := uploadRouter(store, &hits)

	if w := postUpload(handler, "key-1", "payload"); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}

	w := postUpload(handler, "key-1", "different payload")
	if w.Code != http.StatusConflict {
		t.Fatalf("reuse with new body: status = %d, want 409", w.Code)
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
}

func TestIdempotencyRequiresKeyOnGuardedRoutes(t *testing.T) {
	store := newFakeIdempotencyStore()
	hits := 0
	handler := uploadRouter(store, &hits)

	w := postUpload(handler, "", "payload")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing key: status = %d, want 400", w.Code)
	}
	if hits != 0 {
		t.Fatalf("handler ran despite missing key")
	}
}

func TestIdempotencySkipsUnguardedRoutes(t *testing.T) {
	r := chi.NewRouter()
	hits := 0
	r.With(Idempotency(newFakeIdempotencyStore(), nil)).Get("/api/v1/stockpiles", func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stockpiles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || hits != 1 {
		t.Fatalf("unguarded route blocked: status=%d hits=%d", w.Code, hits)
	}
}
