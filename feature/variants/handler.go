package variants

import (
	"errors"

	"variant-manager/core/apperr"
	"variant-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for variant generation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the variant routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/variants")
	group.Post("/generate", h.HandleGenerate)
	group.Post("/preview", h.HandlePreview)
}

// HandleGenerate creates the missing variants of a product.
// @Summary Generate Variants
// @Description Expand size and color ids into variants, skipping configurations that already exist.
// @Tags variants
// @Accept json
// @Produce json
// @Param params body Params true "Generation request"
// @Success 200 {object} Result "Generation result"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 409 {object} map[string]interface{} "Concurrent modification, retry"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /variants/generate [post]
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	var p Params
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.GenerateVariantCombinations(c.UserContext(), p)
	if err != nil {
		return h.fail(c, "Variant generation failed", err)
	}
	return c.JSON(result)
}

// HandlePreview lists the combinations a request would create.
// @Summary Preview Variants
// @Description Show the combinations and base SKUs of a request without writing anything.
// @Tags variants
// @Accept json
// @Produce json
// @Param params body Params true "Generation request"
// @Success 200 {object} Preview "Preview"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /variants/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	var p Params
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	preview, err := h.service.PreviewCombinations(c.UserContext(), p)
	if err != nil {
		return h.fail(c, "Variant preview failed", err)
	}
	return c.JSON(preview)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := apperr.StatusCode(err)
	body := fiber.Map{"error": err.Error()}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
		if len(ve.Details) > 0 {
			body["details"] = ve.Details
		}
	}

	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(body)
}
