package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finops-engine/backend/internal/db"
	"github.com/finops-engine/backend/internal/model"
	"github.com/finops-engine/backend/internal/service"
)

type WorkflowHandler struct {
	engine *service.WorkflowEngine
	repo   *db.Postgres
}

func NewWorkflowHandler(engine *service.WorkflowEngine, repo *db.Postgres) *WorkflowHandler {
	return &WorkflowHandler{engine: engine, repo: repo}
}

// TriggerRun godoc
// @Summary Trigger a triage run
// @Description Runs one alert through the triage workflow. Body alert is optional; without it the configured alert source supplies one.
// @Tags workflow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TriggerRunRequest false "Optional alert payload"
// @Success 200 {object} model.RunResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/runs [post]
func (h *WorkflowHandler) TriggerRun(c *gin.Context) {
	var req model.TriggerRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	var (
		state model.WorkflowState
		err   error
	)
	if req.Alert != nil {
		state, err = h.engine.Run(c.Request.Context(), *req.Alert)
	} else {
		state, err = h.engine.RunNext(c.Request.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrNoAlert) {
			c.JSON(http.StatusOK, gin.H{"status": "idle", "message": "no alert available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.RunResponse{Status: "success", Data: &state})
}

// ListRuns godoc
// @Summary List triage runs
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RunListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/runs [get]
func (h *WorkflowHandler) ListRuns(c *gin.Context) {
	runs, err := h.repo.ListRuns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.RunListResponse{Status: "success", Data: runs})
}

// GetRun godoc
// @Summary Get the latest checkpoint of a run
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Success 200 {object} model.RunResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/runs/{id} [get]
func (h *WorkflowHandler) GetRun(c *gin.Context) {
	id := c.Param("id")

	state, err := h.repo.GetCheckpoint(c.Request.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.RunResponse{Status: "success", Data: state})
}

// GetRunAudit godoc
// @Summary Get the audit trail of a run
// @Tags workflow
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Success 200 {object} model.AuditTrailResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/runs/{id}/audit [get]
func (h *WorkflowHandler) GetRunAudit(c *gin.Context) {
	id := c.Param("id")

	entries, err := h.repo.GetAuditTrail(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.AuditTrailResponse{Status: "success", Data: entries})
}
