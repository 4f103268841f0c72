package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finops-engine/backend/internal/db"
	"github.com/finops-engine/backend/internal/model"
)

type LogsHandler struct {
	repo *db.Postgres
}

func NewLogsHandler(repo *db.Postgres) *LogsHandler {
	return &LogsHandler{repo: repo}
}

// GetLogs godoc
// @Summary List reasoning logs
// @Description Returns per-run result summaries, newest first.
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} model.LogListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/logs [get]
func (h *LogsHandler) GetLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	logs, err := h.repo.GetReasoningLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.LogListResponse{Status: "success", Data: logs})
}

// GetMetrics godoc
// @Summary Get global triage metrics
// @Description Aggregated totals across all runs (runs, approvals, escalations, savings, bounty).
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MetricsResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/metrics [get]
func (h *LogsHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.repo.GetGlobalMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.MetricsResponse{Status: "success", Data: metrics})
}
