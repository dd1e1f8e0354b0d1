package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/infra"
	"diplomakids/pkg/metrics"
	"diplomakids/pkg/utils"
)

const (
	AppName    = "DiplomaKids API"
	AppVersion = "1.0.0"
)

type HealthController struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHealthController(db *gorm.DB, m *metrics.Metrics, log *zap.Logger) *HealthController {
	return &HealthController{db: db, metrics: m, log: log}
}

// Root godoc
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router / [get]
func (h *HealthController) Root(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"name":    AppName,
		"version": AppVersion,
		"status":  "operational",
	}, "")
}

// Health godoc
// @Summary Liveness and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	envelope, status, database, code := "success", "healthy", "connected", http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = infra.Ping(c.Request.Context(), sqlDB)
	}
	if err != nil {
		h.log.Warn("health check: database unreachable", zap.Error(err))
		envelope, status, database, code = "error", "degraded", "disconnected", http.StatusServiceUnavailable
	}

	c.JSON(code, utils.APIResponse{
		Status:  envelope,
		Code:    code,
		TraceID: c.GetString("trace_id"),
		Data: gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		},
	})
}

func (h *HealthController) Metrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
