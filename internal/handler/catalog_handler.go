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

// CatalogServiceInterface defines the interface for the service-offering catalog.
type CatalogServiceInterface interface {
	Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error)
	GetByID(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Update(ctx context.Context, id string, req *model.UpdateServiceRequest) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler handles HTTP requests for service offerings.
type CatalogHandler struct {
	service   CatalogServiceInterface
	validator *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler with the given service and validator.
func NewCatalogHandler(svc CatalogServiceInterface, v *validator.Validate) *CatalogHandler {
	return &CatalogHandler{service: svc, validator: v}
}

// ListServices handles GET /api/services requests.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(services)
}

// GetService handles GET /api/services/:id requests.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}

	svc, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		log.Error().Err(err).Str("service_id", id).Msg("failed to get service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(svc)
}

// CreateService handles POST /api/services requests.
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var req model.CreateServiceRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	svc, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "service already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("service_id", req.ID).Msg("failed to create service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

// UpdateService handles PUT /api/services/:id requests.
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}

	var req model.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	svc, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("service_id", id).Msg("failed to update service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(svc)
}

// DeleteService handles DELETE /api/services/:id requests.
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		log.Error().Err(err).Str("service_id", id).Msg("failed to delete service")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("service_id", id).Msg("service deleted")
	return c.JSON(fiber.Map{"deleted": true})
}
