package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tablebook/pkg/client"
	httputil "tablebook/pkg/http"
	"tablebook/pkg/logger"
)

type HealthHandler struct {
	client *client.Client
	log    *logger.Logger
}

func NewHealthHandler(c *client.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{client: c, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.Health)
	router.HandlerFunc(http.MethodGet, "/ready", h.Ready)
}

// Health reports process liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready additionally checks the booking store connection.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Warn("readiness check failed", "error", err)
		_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "booking store unreachable",
		})
		return
	}

	_ = httputil.WriteSuccess(w, map[string]string{"status": "ready"})
}
