package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"retreat/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context, rp *readpref.ReadPref) error { return f.err }

func probe(t *testing.T, h *HealthHandler, path string) (int, HealthResponse) {
	t.Helper()
	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, resp
}

func TestHealth_AlwaysOK(t *testing.T) {
	code, resp := probe(t, NewHealthHandler(fakePinger{err: errors.New("down")}, nil, logger.Nop()), "/health")
	if code != http.StatusOK || resp.Status != "ok" {
		t.Errorf("got %d %+v", code, resp)
	}
}

func TestReady(t *testing.T) {
	code, resp := probe(t, NewHealthHandler(fakePinger{}, nil, logger.Nop()), "/ready")
	if code != http.StatusOK || resp.Database != "ok" || resp.Cache != "" {
		t.Errorf("healthy: got %d %+v", code, resp)
	}

	code, resp = probe(t, NewHealthHandler(fakePinger{err: errors.New("down")}, nil, logger.Nop()), "/ready")
	if code != http.StatusServiceUnavailable || resp.Database != "error" {
		t.Errorf("mongo down: got %d %+v", code, resp)
	}
}

func TestReady_RedisDownStaysReady(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	code, resp := probe(t, NewHealthHandler(fakePinger{}, client, logger.Nop()), "/ready")
	if code != http.StatusOK || resp.Cache != "ok" {
		t.Errorf("redis up: got %d %+v", code, resp)
	}

	mr.Close()
	code, resp = probe(t, NewHealthHandler(fakePinger{}, client, logger.Nop()), "/ready")
	if code != http.StatusOK || resp.Cache != "error" {
		t.Errorf("redis down: got %d %+v", code, resp)
	}
}
