package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
)

// AuthServiceInterface defines the interface for admin authentication.
type AuthServiceInterface interface {
	Login(req *model.LoginRequest) (*model.LoginResponse, error)
}

// AuthHandler handles admin login requests.
type AuthHandler struct {
	service   AuthServiceInterface
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given service and validator.
func NewAuthHandler(svc AuthServiceInterface, v *validator.Validate) *AuthHandler {
	return &AuthHandler{service: svc, validator: v}
}

// Login handles POST /api/admin/login requests.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn().
				Str("request_id", c.GetRespHeader("X-Request-ID")).
				Str("username", req.Username).
				Msg("admin login rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		log.Error().Err(err).Msg("failed to process login")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("username", req.Username).Msg("admin logged in")
	return c.JSON(resp)
}
