package integrity

import (
	"errors"

	"variant-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/masterdata", h.HandleMasterDataCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Schema, MasterData).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if master, err := h.service.CheckMasterData(ctx); err != nil {
		report["masterdata"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["masterdata"] = master
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the report prefix exists in the storage bucket. Optionally creates the bucket and prefix.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	if c.QueryBool("fix", false) {
		l.Info("Attempting to fix storage structure")
		fixed, err := h.service.RepairStructure(ctx)
		if err != nil {
			l.Error("Structure fix failed", zap.Error(err))
			return c.Status(structureStatus(err)).JSON(fiber.Map{
				"error":   "Failed to fix structure",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "fixed",
			"fixed":  fixed,
		})
	}

	missing, err := h.service.CheckStructure(ctx)
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(structureStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks database schema integrity.
// @Summary Check Schema
// @Description Checks if the database schema matches the catalog models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !report.Matched {
		l.Warn("Schema drift detected", zap.Strings("errors", report.Errors))
	}

	return c.JSON(report)
}

// HandleMasterDataCheck checks the master records used for generation.
// @Summary Check Master Data
// @Description Counts active sizes and colors and verifies a single default warehouse.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.MasterDataReport "Master Data Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/masterdata [get]
func (h *Handler) HandleMasterDataCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckMasterData(c.UserContext())
	if err != nil {
		l.Error("Master data check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(report.Issues) > 0 {
		l.Warn("Master data issues detected", zap.Strings("issues", report.Issues))
	}

	return c.JSON(report)
}

func structureStatus(err error) int {
	if errors.Is(err, ErrStorageDisabled) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
