package server

import (
	"context"
	"net/http"
	"time"

	"mishura/internal/api"
	"mishura/internal/config"
	"mishura/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName  = "mishura"
	probeTimeout = 10 * time.Second
)

// AIChecker reports whether the model is configured and reachable.
type AIChecker interface {
	Configured() bool
	Ping(ctx context.Context) error
}

// PaymentChecker reports whether a payment gateway is wired.
type PaymentChecker interface {
	Enabled() bool
	GatewayName() string
}

type SystemHandler struct {
	cfg      *config.Config
	ping     func(ctx context.Context) error
	ai       AIChecker
	payments PaymentChecker
	started  time.Time
	now      func() time.Time
}

func NewSystemHandler(cfg *config.Config, ping func(ctx context.Context) error, ai AIChecker, payments PaymentChecker) *SystemHandler {
	return &SystemHandler{
		cfg:      cfg,
		ping:     ping,
		ai:       ai,
		payments: payments,
		started:  time.Now(),
		now:      time.Now,
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status:       "healthy",
		Service:      serviceName,
		Version:      h.cfg.Version,
		AIConfigured: h.ai.Configured(),
		Uptime:       h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}

// ComponentsHealth godoc
// @Summary      Component health
// @Description  Checks the database, the model, payments and the cache. Answers 503 when the database is down.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.ComponentsHealthResponse
// @Failure      503 {object} api.ComponentsHealthResponse
// @Router       /api/v1/health [get]
func (h *SystemHandler) ComponentsHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	resp := api.ComponentsHealthResponse{
		Status:      "healthy",
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Components:  make(map[string]string, 4),
		Version:     h.cfg.Version,
		Environment: h.cfg.Environment,
	}

	if err := h.ping(ctx); err != nil {
		logger.Error("database health check failed", "error", err)
		resp.Components["database"] = "unhealthy"
		resp.Status = "unhealthy"
	} else {
		resp.Components["database"] = "healthy"
	}

	switch {
	case !h.ai.Configured():
		resp.Components["ai"] = "not_configured"
		degrade(&resp)
	case h.ai.Ping(ctx) != nil:
		resp.Components["ai"] = "unhealthy"
		degrade(&resp)
	default:
		resp.Components["ai"] = "healthy"
	}

	if h.payments.Enabled() {
		resp.Components["payments"] = h.payments.GatewayName()
	} else {
		resp.Components["payments"] = "disabled"
	}

	resp.Components["cache"] = h.cfg.CacheBackend

	status := http.StatusOK
	if resp.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

type InfoResponse struct {
	Service     string            `json:"service" example:"МИШУРА"`
	Description string            `json:"description"`
	Version     string            `json:"version" example:"2.6.1"`
	Environment string            `json:"environment" example:"production"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Info godoc
// @Summary      API overview
// @Tags         system
// @Produce      json
// @Success      200 {object} InfoResponse
// @Router       /api/v1/ [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Service:     "МИШУРА",
		Description: "ИИ-стилист: анализ и сравнение образов по фотографиям",
		Version:     h.cfg.Version,
		Environment: h.cfg.Environment,
		Endpoints: map[string]string{
			"health":          "/api/v1/health",
			"analyze":         "/api/v1/analyze-outfit",
			"compare":         "/api/v1/compare-outfits",
			"balance":         "/api/v1/users/{telegram_id}/balance",
			"consultations":   "/api/v1/users/{telegram_id}/consultations",
			"pricing":         "/api/v1/pricing/plans",
			"payments_create": "/api/v1/payments/create",
			"payment_status":  "/api/v1/payments/{payment_id}/status",
			"docs":            "/swagger/index.html",
		},
	})
}

// Metrics godoc
// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// degrade lowers a healthy status; an unhealthy one stays unhealthy.
func degrade(resp *api.ComponentsHealthResponse) {
	if resp.Status == "healthy" {
		resp.Status = "degraded"
	}
}
