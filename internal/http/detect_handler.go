package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tnved-api/internal/auditlog"
	"tnved-api/internal/service"
)

const serviceName = "tnved-api"

const timestampLayout = "2006-01-02 15:04:05"

// DetectHandler holds dependencies for the classification endpoints.
type DetectHandler struct {
	logger   *zap.Logger
	detector *service.DetectService
	audit    *auditlog.Appender
}

// NewDetectHandler creates a DetectHandler with its dependencies.
func NewDetectHandler(logger *zap.Logger, detector *service.DetectService, audit *auditlog.Appender) *DetectHandler {
	return &DetectHandler{
		logger:   logger,
		detector: detector,
		audit:    audit,
	}
}

// Detect handles POST /tnved/detect.
func (h *DetectHandler) Detect(c *gin.Context) {
	var req struct {
		Manufacturer string  `json:"manufacturer"`
		Product      string  `json:"product"`
		Extra        *string `json:"extra"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid detect request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	extra := ""
	if req.Extra != nil {
		extra = *req.Extra
	}

	fullName := service.ComposeFullName(req.Manufacturer, req.Product, extra)
	if fullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fields empty"})
		return
	}

	result, err := h.detector.Detect(c.Request.Context(), fullName)
	if err != nil {
		h.logger.Error("classification failed", zap.Error(err), zap.String("product", req.Product))
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification provider: " + err.Error()})
		return
	}

	// Fire and forget: log delivery never affects the response, and an
	// abandoned client connection must not cancel the push.
	row := auditlog.Row{
		Timestamp:    time.Now().Format(timestampLayout),
		ClientIP:     c.ClientIP(),
		Manufacturer: req.Manufacturer,
		Product:      req.Product,
		Extra:        extra,
		Code:         result.Code,
		Duty:         result.Duty,
		Vat:          result.Vat,
		UserAgent:    c.Request.UserAgent(),
	}
	go h.audit.Append(context.Background(), row)

	c.JSON(http.StatusOK, result)
}

// Health handles GET / (liveness probe).
func (h *DetectHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"time":    time.Now().Format(timestampLayout),
	})
}
