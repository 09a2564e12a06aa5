package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"retreat/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStore(client, ttl, logger.Nop()), mr
}

func TestRedisIdempotencyStore_RoundTrip(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	_, found := store.Get(ctx, "missing")
	assert.False(t, found)

	store.Set(ctx, "k1", &CachedResponse{
		StatusCode: http.StatusCreated,
		Headers:    http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(`{"data":{"id":"r1"}}`),
	})

	got, found := store.Get(ctx, "k1")
	require.True(t, found)
	assert.Equal(t, http.StatusCreated, got.StatusCode)
	assert.Equal(t, `{"data":{"id":"r1"}}`, string(got.Body))
	assert.Equal(t, "application/json", got.Headers.Get("Content-Type"))

	mr.FastForward(2 * time.Minute)
	_, found = store.Get(ctx, "k1")
	assert.False(t, found, "entry should expire with the ttl")
}

func TestRedisIdempotencyStore_CorruptEntryIsMiss(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("idempotency:bad", "not json"))

	_, found := store.Get(context.Background(), "bad")
	assert.False(t, found)
}

func TestRedisIdempotencyStore_RedisDownIsMiss(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	store.Set(context.Background(), "k", &CachedResponse{StatusCode: http.StatusOK})
	_, found := store.Get(context.Background(), "k")
	assert.False(t, found)
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	stores := map[string]IdempotencyStore{
		"memory": NewInMemoryIdempotencyStore(time.Minute),
	}
	redisStore, _ := newRedisStore(t, time.Minute)
	stores["redis"] = redisStore

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			defer store.Stop()

			var calls atomic.Int32
			handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
			}))

			send := func(key string) *httptest.ResponseRecorder {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{}`))
				req.Header.Set(DefaultIdempotencyHeader, key)
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)
				return rec
			}

			first := send("abc")
			second := send("abc")
			third := send("other")

			assert.Equal(t, int32(2), calls.Load())
			assert.Equal(t, http.StatusCreated, second.Code)
			assert.Equal(t, first.Body.String(), second.Body.String())
			assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
			assert.NotEqual(t, first.Body.String(), third.Body.String())
		})
	}
}

func TestIdempotency_DoesNotCacheFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.Header.Set(DefaultIdempotencyHeader, "same")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, int32(2), calls.Load())
}
