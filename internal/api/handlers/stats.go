package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlens/reconcile-backend/internal/api/dto"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// StatsHandler serves aggregate statistics across registered runs.
type StatsHandler struct {
	repo store.Repository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo store.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, stats)
}
