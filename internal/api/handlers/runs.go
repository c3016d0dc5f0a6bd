package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlens/reconcile-backend/internal/api/dto"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// RunsHandler serves registered reconciliation runs.
type RunsHandler struct {
	repo store.Repository
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo store.Repository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// List handles GET /api/runs - recent runs, newest first.
func (h *RunsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.RunSummaryResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, dto.ToRunSummary(run))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/runs/:id - the full stored result.
func (h *RunsHandler) Get(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		Result:    run.Result,
	})
}

// Unmatched handles GET /api/runs/:id/unmatched?side=left|right.
func (h *RunsHandler) Unmatched(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	side := c.DefaultQuery("side", "left")
	var records = run.Result.UnmatchedLeft
	switch side {
	case "left":
	case "right":
		records = run.Result.UnmatchedRight
	default:
		c.JSON(http.StatusBadRequest, dto.BadRequestError("side must be left or right"))
		return
	}

	c.JSON(http.StatusOK, dto.UnmatchedResponse{
		RunID:   run.ID,
		Side:    side,
		Records: records,
		Count:   len(records),
	})
}

func (h *RunsHandler) lookup(c *gin.Context) (*store.Run, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return nil, false
	}

	run, err := h.repo.GetRun(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("run"))
		return nil, false
	}
	return run, true
}
