package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finops-engine/backend/internal/model"
	"github.com/finops-engine/backend/internal/service"
)

type KnowledgeHandler struct {
	svc *service.KnowledgeService
}

func NewKnowledgeHandler(svc *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

// SeedKnowledge godoc
// @Summary Seed infra knowledge documents
// @Description Embeds and stores infra context documents used by the triage workflow. Requires the admin role.
// @Tags knowledge
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.KnowledgeSeedRequest true "Documents to seed"
// @Success 200 {object} model.KnowledgeSeedResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/knowledge/seed [post]
func (h *KnowledgeHandler) SeedKnowledge(c *gin.Context) {
	var req model.KnowledgeSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documents is empty"})
		return
	}

	inserted, err := h.svc.Seed(c.Request.Context(), req.Documents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"inserted": inserted,
		})
		return
	}

	c.JSON(http.StatusOK, model.KnowledgeSeedResponse{Status: "success", Inserted: inserted})
}

// SearchKnowledge godoc
// @Summary Search infra knowledge
// @Tags knowledge
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Max results (default 3)"
// @Success 200 {object} model.KnowledgeSearchResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/knowledge/search [get]
func (h *KnowledgeHandler) SearchKnowledge(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 3
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	matches, err := h.svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.KnowledgeSearchResponse{Status: "success", Data: matches})
}
