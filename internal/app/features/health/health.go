// internal/app/features/health/health.go
package health

import (
	"net/http"

	"github.com/teloworks/telodash/internal/app/system/jsonutil"
	"github.com/teloworks/telodash/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler answers probe requests. The dashboard has a single backing
// service, the reporting MongoDB, so "degraded" means Mongo is down.
type Handler struct {
	mongoClient *mongo.Client
	logger      *zap.Logger
}

// NewHandler creates a new health Handler.
func NewHandler(mongoClient *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		logger:      logger,
	}
}

// Response is the /health body.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router serving /health, /health/ready, and
// /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the probe aliases Kubernetes conventions
// expect at the root: /ready, /readyz, /livez.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check reports overall status plus the per-service breakdown.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: map[string]string{"mongodb": "ok"},
	}

	ctx, cancel := timeouts.ForLookup(r.Context())
	defer cancel()

	status := http.StatusOK
	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		resp.Status = "degraded"
		resp.Services["mongodb"] = "unavailable"
		status = http.StatusServiceUnavailable
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
	}

	jsonutil.JSON(w, status, resp)
}

// Ready reports whether the dashboard can serve panels, which needs a
// reachable Mongo.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.ForLookup(r.Context())
	defer cancel()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}

	jsonutil.OK(w, map[string]string{"status": "ready"})
}

// Live only proves the process is serving requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}
