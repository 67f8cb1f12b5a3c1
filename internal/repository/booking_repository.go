package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

// BookingRepository provides data access for booking requests using pgx.
type BookingRepository struct {
	pool PoolInterface
}

// NewBookingRepository creates a new BookingRepository with the given pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// NewBookingRepositoryWithPool creates a new BookingRepository with a custom pool interface.
// This is primarily used for testing.
func NewBookingRepositoryWithPool(pool PoolInterface) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Insert persists a booking within a transaction, so the booking and any
// coupon redemption commit or roll back together.
func (r *BookingRepository) Insert(ctx context.Context, tx database.TxQuerier, b *model.Booking) error {
	var couponCode *string
	if b.CouponCode != "" {
		couponCode = &b.CouponCode
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO bookings (id, customer_name, customer_phone, customer_email, service_id, service_title, coupon_code, original_price, final_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.ServiceID, b.ServiceTitle, couponCode, b.OriginalPrice, b.FinalPrice)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// List retrieves all bookings, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	query := `SELECT id, customer_name, customer_phone, customer_email, service_id,
		service_title, COALESCE(coupon_code, ''), original_price, final_price, created_at
		FROM bookings ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		err := rows.Scan(
			&b.ID,
			&b.CustomerName,
			&b.CustomerPhone,
			&b.CustomerEmail,
			&b.ServiceID,
			&b.ServiceTitle,
			&b.CouponCode,
			&b.OriginalPrice,
			&b.FinalPrice,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}
