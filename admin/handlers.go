package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/validation"
	"github.com/kbukum/jasmine-step/version"
)

// HealthChecker reports component health.
type HealthChecker interface {
	HealthAll(ctx context.Context) []component.Health
}

type settingsRequest struct {
	ApplicationExecPath *string `json:"applicationExecPath"`
}

type settingsResponse struct {
	Settings   settings.Settings `json:"settings"`
	Validation validation.Result `json:"validation"`
}

type healthResponse struct {
	Status     component.HealthStatus `json:"status"`
	Components []component.Health     `json:"components"`
}

type handlers struct {
	store   *settings.Store
	health  HealthChecker
	metrics *metrics
	log     *logger.Logger
}

func (h *handlers) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

func (h *handlers) putSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("body", "malformed JSON").WithCause(err))
		return
	}
	if req.ApplicationExecPath == nil {
		respondError(c, errors.MissingField("applicationExecPath"))
		return
	}

	result, err := h.store.Set(*req.ApplicationExecPath)
	h.metrics.settingsUpdates.WithLabelValues(string(result.Kind)).Inc()
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("Settings updated via admin API", logger.Fields(
		logger.FieldPath, *req.ApplicationExecPath,
		logger.FieldRequestID, c.GetString(ctxRequestID),
		"subject", c.GetString(ctxSubject),
	))
	c.JSON(http.StatusOK, settingsResponse{Settings: h.store.Get(), Validation: result})
}

func (h *handlers) checkExecPath(c *gin.Context) {
	c.JSON(http.StatusOK, settings.CheckExecPath(h.store.Fs(), c.Query("value")))
}

func (h *handlers) healthz(c *gin.Context) {
	resp := healthResponse{Components: []component.Health{}}
	if h.health != nil {
		resp.Components = h.health.HealthAll(c.Request.Context())
	}
	resp.Status = component.Worst(resp.Components)

	status := http.StatusOK
	if resp.Status == component.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *handlers) version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
