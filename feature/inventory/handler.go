package inventory

import (
	"errors"

	"variant-manager/core/logger"
	"variant-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/reconcile", h.HandleReconcileInventory)
	group.Post("/reconcile/config-hash", h.HandleReconcileConfigHash)
	group.Get("/drifts", h.HandleListDrifts)
}

// RunResponse is the body returned by reconciliation endpoints.
type RunResponse struct {
	Summary *reconcile.RunSummary `json:"summary"`
	Report  *ReportLocation       `json:"report,omitempty"`
}

// HandleReconcileInventory checks stock totals against the ledger.
// @Summary Reconcile Inventory
// @Description Compare cached stock totals with ledger sums and record OPEN drifts.
// @Tags inventory
// @Produce json
// @Param export query bool false "Archive the report to object storage"
// @Success 200 {object} RunResponse "Run summary"
// @Router /inventory/reconcile [post]
func (h *Handler) HandleReconcileInventory(c *fiber.Ctx) error {
	summary := h.service.ReconcileInventory(c.UserContext())
	return h.respond(c, summary)
}

// HandleReconcileConfigHash repairs stale variant config hashes.
// @Summary Reconcile Config Hashes
// @Description Recompute variant config hashes and overwrite stale ones.
// @Tags inventory
// @Produce json
// @Param dry_run query bool false "Only report what would be repaired"
// @Param export query bool false "Archive the report to object storage"
// @Success 200 {object} RunResponse "Run summary"
// @Router /inventory/reconcile/config-hash [post]
func (h *Handler) HandleReconcileConfigHash(c *fiber.Ctx) error {
	summary := h.service.ReconcileConfigHashes(c.UserContext(), c.QueryBool("dry_run", false))
	return h.respond(c, summary)
}

// HandleListDrifts lists drift records by status.
// @Summary List Drifts
// @Description List drift records awaiting triage.
// @Tags inventory
// @Produce json
// @Param status query string false "Drift status (default OPEN)"
// @Param limit query int false "Maximum number of records (default 100)"
// @Success 200 {array} models.DriftRecord "Drift records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/drifts [get]
func (h *Handler) HandleListDrifts(c *fiber.Ctx) error {
	drifts, err := h.service.OpenDrifts(c.UserContext(), c.Query("status"), c.QueryInt("limit", 100))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list drifts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(drifts)
}

func (h *Handler) respond(c *fiber.Ctx, summary *reconcile.RunSummary) error {
	resp := RunResponse{Summary: summary}
	if !c.QueryBool("export", false) {
		return c.JSON(resp)
	}

	loc, err := h.service.ExportReport(c.UserContext(), summary)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrStorageDisabled) {
			status = fiber.StatusServiceUnavailable
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to export report", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "summary": summary})
	}
	resp.Report = loc
	return c.JSON(resp)
}
