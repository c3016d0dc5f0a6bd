package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlens/reconcile-backend/internal/api/dto"
	"github.com/ledgerlens/reconcile-backend/internal/domain/recon"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// ReconcileHandler handles reconciliation requests.
type ReconcileHandler struct {
	repo      store.Repository
	engineCfg recon.MatchConfig
	logger    *slog.Logger
}

// NewReconcileHandler creates a reconcile handler with the server's
// default engine configuration.
func NewReconcileHandler(repo store.Repository, engineCfg recon.MatchConfig, logger *slog.Logger) *ReconcileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileHandler{
		repo:      repo,
		engineCfg: engineCfg,
		logger:    logger,
	}
}

// Reconcile handles POST /api/reconcile - runs the engine over the two
// submitted collections and registers the result.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	cfg := req.Config.Apply(h.engineCfg)
	left, right := req.Records()

	result, err := recon.Reconcile(left, right, cfg)
	if err != nil {
		// Only invalid configuration reaches here
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
		return
	}

	run, err := h.repo.SaveRun(result)
	if err != nil {
		h.logger.Error("failed to register run", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.logger.Info("reconciliation run complete",
		"run_id", run.ID,
		"left", result.Summary.TotalLeft,
		"right", result.Summary.TotalRight,
		"matched", result.Summary.MatchedPairs)

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		Result:    result,
	})
}
