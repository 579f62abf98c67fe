package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcus/scenevoice/internal/repository"
)

// AuditHandler exposes the request audit trail.
type AuditHandler struct {
	audit *repository.AuditRepository
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(audit *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Recent handles GET /api/v1/audit/recent.
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	audits, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list audits: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audits": audits,
		"total":  len(audits),
	})
}
