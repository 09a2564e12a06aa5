package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httputil "retreat/pkg/http"
	"retreat/pkg/logger"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}

// mongoPinger is satisfied by *mongo.Client.
type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthHandler struct {
	mongo mongoPinger
	redis *redis.Client
	log   *logger.Logger
}

// NewHealthHandler builds the probe handler. redisClient may be nil.
func NewHealthHandler(mongoClient mongoPinger, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongo: mongoClient,
		redis: redisClient,
		log:   log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ready", Database: "ok"}
	status := http.StatusOK

	if err := h.mongo.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		resp.Status, resp.Database = "unavailable", "error"
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Cache = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// a Redis outage degrades idempotency only; readiness stays up
			h.log.Warn("Redis health check failed", "error", err, "path", r.URL.Path)
			resp.Cache = "error"
		}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
