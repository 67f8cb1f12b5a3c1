package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Schema is the full DDL for the studio server. Statements are idempotent so
// Migrate can run on every startup.
//
// redemption_counter is a single-row table: the global redemption total is
// maintained as an atomically incremented value instead of being re-derived
// by counting coupon_redemptions on every check.
const Schema = `
CREATE TABLE IF NOT EXISTS coupons (
	code VARCHAR(64) PRIMARY KEY,
	discount_type VARCHAR(16) NOT NULL DEFAULT 'fixed',
	discount_value INTEGER NOT NULL CHECK (discount_value > 0),
	applicable_services TEXT[] NOT NULL DEFAULT '{}',
	max_redemptions INTEGER NOT NULL CHECK (max_redemptions > 0),
	usage_count INTEGER NOT NULL DEFAULT 0 CHECK (usage_count >= 0),
	active BOOLEAN NOT NULL DEFAULT TRUE,
	expires_at TIMESTAMP WITH TIME ZONE,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS services (
	id VARCHAR(255) PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	base_price INTEGER NOT NULL CHECK (base_price >= 0),
	discounted_price INTEGER NOT NULL DEFAULT 0 CHECK (discounted_price >= 0),
	trainer VARCHAR(255) NOT NULL DEFAULT '',
	capacity INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	features TEXT[] NOT NULL DEFAULT '{}',
	timings VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	customer_name VARCHAR(255) NOT NULL,
	customer_phone VARCHAR(32) NOT NULL,
	customer_email VARCHAR(255) NOT NULL DEFAULT '',
	service_id VARCHAR(255) NOT NULL,
	service_title VARCHAR(255) NOT NULL,
	coupon_code VARCHAR(64),
	original_price INTEGER NOT NULL,
	final_price INTEGER NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS coupon_redemptions (
	id UUID PRIMARY KEY,
	coupon_code VARCHAR(64) NOT NULL,
	customer_name VARCHAR(255) NOT NULL,
	customer_phone VARCHAR(32) NOT NULL,
	customer_email VARCHAR(255) NOT NULL DEFAULT '',
	service_id VARCHAR(255) NOT NULL,
	service_title VARCHAR(255) NOT NULL,
	original_price INTEGER NOT NULL,
	final_price INTEGER NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_redemptions_coupon_code ON coupon_redemptions(coupon_code);

CREATE TABLE IF NOT EXISTS redemption_resets (
	id UUID PRIMARY KEY,
	performed_by VARCHAR(255) NOT NULL DEFAULT '',
	coupons_reset INTEGER NOT NULL,
	redemptions_deleted INTEGER NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS redemption_counter (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	total INTEGER NOT NULL DEFAULT 0 CHECK (total >= 0)
);

INSERT INTO redemption_counter (id, total) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;
`

// Migrate applies the schema. Safe to call on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("database schema applied")
	return nil
}
