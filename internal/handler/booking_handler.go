package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
)

// BookingServiceInterface defines the interface for booking business logic.
type BookingServiceInterface interface {
	Submit(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error)
	List(ctx context.Context) ([]model.Booking, error)
}

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	service   BookingServiceInterface
	validator *validator.Validate
}

// NewBookingHandler creates a new BookingHandler with the given service and validator.
func NewBookingHandler(svc BookingServiceInterface, v *validator.Validate) *BookingHandler {
	return &BookingHandler{service: svc, validator: v}
}

// CreateBooking handles POST /api/bookings requests. A coupon that fails its
// checks does not fail the booking; the response reports whether it applied.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req model.CreateBookingRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	resp, err := h.service.Submit(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("service_id", req.ServiceID).
			Str("coupon_code", req.CouponCode).
			Msg("failed to create booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("booking_id", resp.Booking.ID).
		Str("service_id", resp.Booking.ServiceID).
		Str("coupon_code", resp.Booking.CouponCode).
		Bool("coupon_applied", resp.CouponApplied).
		Int("final_price", resp.Booking.FinalPrice).
		Msg("booking created")

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListBookings handles GET /api/bookings requests for admins.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(bookings)
}
