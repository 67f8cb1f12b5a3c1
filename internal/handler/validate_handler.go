package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// ValidatorServiceInterface defines the interface for coupon validation logic.
type ValidatorServiceInterface interface {
	Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error)
}

// ValidateHandler handles the public coupon validation endpoint.
type ValidateHandler struct {
	service   ValidatorServiceInterface
	validator *validator.Validate
}

// NewValidateHandler creates a new ValidateHandler with the given service and validator.
func NewValidateHandler(svc ValidatorServiceInterface, v *validator.Validate) *ValidateHandler {
	return &ValidateHandler{service: svc, validator: v}
}

// ValidateCoupon handles POST /api/coupons/validate requests.
//
// Rejections come back as 200 with valid=false and a message: the outcome
// is an answer for the customer, not a request error. Only malformed input
// and genuine failures produce non-200 statuses.
func (h *ValidateHandler) ValidateCoupon(c *fiber.Ctx) error {
	var req model.ValidateCouponRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	result, err := h.service.Validate(c.Context(), &req)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("coupon_code", req.Code).
			Str("service_id", req.ServiceID).
			Msg("failed to validate coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("coupon_code", req.Code).
		Str("service_id", req.ServiceID).
		Bool("valid", result.Valid).
		Str("message", result.Message).
		Msg("coupon validated")

	return c.JSON(result)
}
