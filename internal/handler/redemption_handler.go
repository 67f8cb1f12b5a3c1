package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/middleware"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
)

// RedemptionServiceInterface defines the interface for redemption queries.
type RedemptionServiceInterface interface {
	ListRedemptions(ctx context.Context) ([]model.Redemption, error)
	RedemptionCount(ctx context.Context) (total, cap int, err error)
	ListResetAudits(ctx context.Context) ([]model.ResetAudit, error)
}

// ResetServiceInterface defines the interface for the bulk redemption reset.
type ResetServiceInterface interface {
	Reset(ctx context.Context, performedBy string, req *model.ResetRequest) (*model.ResetResult, error)
}

// RedemptionHandler handles HTTP requests for redemption records, the global
// counter, and the bulk reset.
type RedemptionHandler struct {
	service      RedemptionServiceInterface
	resetService ResetServiceInterface
	validator    *validator.Validate
}

// NewRedemptionHandler creates a new RedemptionHandler with the given services and validator.
func NewRedemptionHandler(svc RedemptionServiceInterface, resetSvc ResetServiceInterface, v *validator.Validate) *RedemptionHandler {
	return &RedemptionHandler{service: svc, resetService: resetSvc, validator: v}
}

// ListRedemptions handles GET /api/redemptions requests.
func (h *RedemptionHandler) ListRedemptions(c *fiber.Ctx) error {
	redemptions, err := h.service.ListRedemptions(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list redemptions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(redemptions)
}

// GetRedemptionCount handles GET /api/redemptions/count requests, reporting
// the global total against the cap.
func (h *RedemptionHandler) GetRedemptionCount(c *fiber.Ctx) error {
	total, cap, err := h.service.RedemptionCount(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read redemption count")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{
		"total":     total,
		"cap":       cap,
		"exhausted": total >= cap,
	})
}

// ListResets handles GET /api/redemptions/resets requests for the audit trail.
func (h *RedemptionHandler) ListResets(c *fiber.Ctx) error {
	audits, err := h.service.ListResetAudits(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list reset audits")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(audits)
}

// ResetRedemptions handles POST /api/redemptions/reset requests. The body
// must carry confirm:"RESET" or the operation is refused.
func (h *RedemptionHandler) ResetRedemptions(c *fiber.Ctx) error {
	var req model.ResetRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	performedBy := middleware.AdminUser(c)
	result, err := h.resetService.Reset(c.Context(), performedBy, &req)
	if err != nil {
		if errors.Is(err, service.ErrResetNotConfirmed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "reset requires confirm to be exactly \"" + service.ResetConfirmation + "\"",
			})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("performed_by", performedBy).
			Msg("failed to reset redemptions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Warn().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("performed_by", performedBy).
		Int("coupons_reset", result.CouponsReset).
		Int("redemptions_deleted", result.RedemptionsDeleted).
		Msg("bulk redemption reset executed")

	return c.JSON(result)
}
