package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

// RedemptionRepository provides data access for redemption records, the
// global redemption counter row, and the reset audit trail.
type RedemptionRepository struct {
	pool PoolInterface
}

// NewRedemptionRepository creates a new RedemptionRepository with the given pool.
func NewRedemptionRepository(pool *pgxpool.Pool) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

// NewRedemptionRepositoryWithPool creates a new RedemptionRepository with a custom
// pool interface. This is primarily used for testing.
func NewRedemptionRepositoryWithPool(pool PoolInterface) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

// Insert appends a redemption record within a transaction.
func (r *RedemptionRepository) Insert(ctx context.Context, tx database.TxQuerier, red *model.Redemption) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO coupon_redemptions (id, coupon_code, customer_name, customer_phone, customer_email, service_id, service_title, original_price, final_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		red.ID, red.CouponCode, red.CustomerName, red.CustomerPhone, red.CustomerEmail,
		red.ServiceID, red.ServiceTitle, red.OriginalPrice, red.FinalPrice)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

// CountByCoupon returns the number of redemption records referencing a coupon.
func (r *RedemptionRepository) CountByCoupon(ctx context.Context, couponCode string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM coupon_redemptions WHERE coupon_code = $1`, couponCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count redemptions for %s: %w", couponCode, err)
	}
	return count, nil
}

// List retrieves all redemption records, newest first.
func (r *RedemptionRepository) List(ctx context.Context) ([]model.Redemption, error) {
	query := `SELECT id, coupon_code, customer_name, customer_phone, customer_email,
		service_id, service_title, original_price, final_price, created_at
		FROM coupon_redemptions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := []model.Redemption{}
	for rows.Next() {
		var red model.Redemption
		err := rows.Scan(
			&red.ID,
			&red.CouponCode,
			&red.CustomerName,
			&red.CustomerPhone,
			&red.CustomerEmail,
			&red.ServiceID,
			&red.ServiceTitle,
			&red.OriginalPrice,
			&red.FinalPrice,
			&red.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan redemption row: %w", err)
		}
		redemptions = append(redemptions, red)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate redemption rows: %w", err)
	}
	return redemptions, nil
}

// DeleteAll removes every redemption record within a transaction.
// Returns the number of records deleted.
func (r *RedemptionRepository) DeleteAll(ctx context.Context, tx database.TxQuerier) (int, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM coupon_redemptions`)
	if err != nil {
		return 0, fmt.Errorf("delete redemptions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GlobalCount reads the server-authoritative total of redemptions across all
// coupons from the counter row.
func (r *RedemptionRepository) GlobalCount(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT total FROM redemption_counter WHERE id = 1`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("read redemption counter: %w", err)
	}
	return total, nil
}

// IncrementGlobal atomically bumps the global redemption counter, refusing to
// cross the cap. Returns false when the counter is already at the cap.
// Must be called within the redemption transaction.
func (r *RedemptionRepository) IncrementGlobal(ctx context.Context, tx database.TxQuerier, cap int) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE redemption_counter SET total = total + 1 WHERE id = 1 AND total < $1`, cap)
	if err != nil {
		return false, fmt.Errorf("increment redemption counter: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ResetGlobal zeroes the global redemption counter within a transaction.
func (r *RedemptionRepository) ResetGlobal(ctx context.Context, tx database.TxQuerier) error {
	_, err := tx.Exec(ctx, `UPDATE redemption_counter SET total = 0 WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("reset redemption counter: %w", err)
	}
	return nil
}

// InsertResetAudit appends one reset audit record. Called outside the reset
// transaction, after it commits.
func (r *RedemptionRepository) InsertResetAudit(ctx context.Context, audit *model.ResetAudit) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO redemption_resets (id, performed_by, coupons_reset, redemptions_deleted, note)
		 VALUES ($1, $2, $3, $4, $5)`,
		audit.ID, audit.PerformedBy, audit.CouponsReset, audit.RedemptionsDeleted, audit.Note)
	if err != nil {
		return fmt.Errorf("insert reset audit: %w", err)
	}
	return nil
}

// ListResetAudits retrieves the reset audit trail, newest first.
func (r *RedemptionRepository) ListResetAudits(ctx context.Context) ([]model.ResetAudit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, performed_by, coupons_reset, redemptions_deleted, note, created_at
		 FROM redemption_resets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reset audits: %w", err)
	}
	defer rows.Close()

	audits := []model.ResetAudit{}
	for rows.Next() {
		var a model.ResetAudit
		if err := rows.Scan(&a.ID, &a.PerformedBy, &a.CouponsReset, &a.RedemptionsDeleted, &a.Note, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reset audit row: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reset audit rows: %w", err)
	}
	return audits, nil
}
