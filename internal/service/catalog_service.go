package service

import (
	"context"
	"fmt"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// CatalogService provides business logic for the service-offering catalog.
type CatalogService struct {
	serviceRepo ServiceRepositoryInterface
}

// NewCatalogService creates a new CatalogService with the given repository.
func NewCatalogService(serviceRepo ServiceRepositoryInterface) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// Create creates a new service offering.
// Returns ErrServiceExists if a service with the same id already exists.
func (s *CatalogService) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if req == nil || req.BasePrice == nil {
		return nil, ErrInvalidRequest
	}

	svc := &model.Service{
		ID:          req.ID,
		Title:       req.Title,
		BasePrice:   *req.BasePrice,
		Trainer:     req.Trainer,
		Description: req.Description,
		Features:    req.Features,
		Timings:     req.Timings,
	}
	if req.DiscountedPrice != nil {
		svc.DiscountedPrice = *req.DiscountedPrice
	}
	if req.Capacity != nil {
		svc.Capacity = *req.Capacity
	}
	if svc.Features == nil {
		svc.Features = []string{}
	}

	if err := s.serviceRepo.Insert(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetByID retrieves a service offering.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// List returns all service offerings.
func (s *CatalogService) List(ctx context.Context) ([]model.Service, error) {
	return s.serviceRepo.List(ctx)
}

// Update replaces a service offering's attributes.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) Update(ctx context.Context, id string, req *model.UpdateServiceRequest) (*model.Service, error) {
	if req == nil || req.BasePrice == nil {
		return nil, ErrInvalidRequest
	}

	svc := &model.Service{
		ID:          id,
		Title:       req.Title,
		BasePrice:   *req.BasePrice,
		Trainer:     req.Trainer,
		Description: req.Description,
		Features:    req.Features,
		Timings:     req.Timings,
	}
	if req.DiscountedPrice != nil {
		svc.DiscountedPrice = *req.DiscountedPrice
	}
	if req.Capacity != nil {
		svc.Capacity = *req.Capacity
	}
	if svc.Features == nil {
		svc.Features = []string{}
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a service offering.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.serviceRepo.Delete(ctx, id)
}
