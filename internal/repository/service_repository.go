package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
)

// ServiceRepository provides data access for service offerings using pgx.
type ServiceRepository struct {
	pool PoolInterface
}

// NewServiceRepository creates a new ServiceRepository with the given pool.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// NewServiceRepositoryWithPool creates a new ServiceRepository with a custom pool interface.
// This is primarily used for testing.
func NewServiceRepositoryWithPool(pool PoolInterface) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, title, base_price, discounted_price, trainer, capacity,
	description, features, timings, created_at, updated_at`

func scanService(row pgx.Row) (*model.Service, error) {
	var s model.Service
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.BasePrice,
		&s.DiscountedPrice,
		&s.Trainer,
		&s.Capacity,
		&s.Description,
		&s.Features,
		&s.Timings,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	return &s, nil
}

// Insert inserts a new service offering.
// Returns service.ErrServiceExists if a service with the same id already exists.
func (r *ServiceRepository) Insert(ctx context.Context, svc *model.Service) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO services (id, title, base_price, discounted_price, trainer, capacity, description, features, timings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		svc.ID, svc.Title, svc.BasePrice, svc.DiscountedPrice, svc.Trainer,
		svc.Capacity, svc.Description, svc.Features, svc.Timings)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrServiceExists
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID retrieves a service offering by its slug id.
// Returns nil, nil if the service is not found (service layer handles this).
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	svc, err := scanService(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id %s: %w", id, err)
	}
	return svc, nil
}

// List retrieves all service offerings ordered by title.
func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}
	return services, nil
}

// Update replaces a service offering's attributes.
// Returns service.ErrServiceNotFound if the service doesn't exist.
func (r *ServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE services SET title = $2, base_price = $3, discounted_price = $4, trainer = $5,
		 capacity = $6, description = $7, features = $8, timings = $9, updated_at = NOW()
		 WHERE id = $1`,
		svc.ID, svc.Title, svc.BasePrice, svc.DiscountedPrice, svc.Trainer,
		svc.Capacity, svc.Description, svc.Features, svc.Timings)
	if err != nil {
		return fmt.Errorf("update service %s: %w", svc.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrServiceNotFound
	}
	return nil
}

// Delete removes a service offering.
// Returns service.ErrServiceNotFound if the service doesn't exist.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrServiceNotFound
	}
	return nil
}
