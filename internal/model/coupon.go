package model

import "time"

// DiscountTypeFixed is the only discount type the studio currently sells:
// a flat amount off the service price.
const DiscountTypeFixed = "fixed"

// Coupon represents a discount code in the system. The code itself is the
// storage key, normalized to uppercase.
type Coupon struct {
	Code               string     `json:"code"`
	DiscountType       string     `json:"discount_type"`
	DiscountValue      int        `json:"discount_value"`
	ApplicableServices []string   `json:"applicable_services"` // empty = all services
	MaxRedemptions     int        `json:"max_redemptions"`
	UsageCount         int        `json:"usage_count"`
	Active             bool       `json:"active"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateCouponRequest is the DTO for creating a coupon.
type CreateCouponRequest struct {
	Code               string     `json:"code" validate:"required,notblank,couponcode,max=64"`
	DiscountType       string     `json:"discount_type" validate:"omitempty,oneof=fixed"`
	DiscountValue      *int       `json:"discount_value" validate:"required,gte=1"`
	ApplicableServices []string   `json:"applicable_services" validate:"omitempty,dive,notblank"`
	MaxRedemptions     *int       `json:"max_redemptions" validate:"required,gte=1"`
	ExpiresAt          *time.Time `json:"expires_at"`
}

// UpdateCouponStatusRequest is the DTO for the admin active/inactive toggle.
type UpdateCouponStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ValidateCouponRequest is the DTO for POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code      string `json:"code" validate:"required,notblank,max=64"`
	ServiceID string `json:"service_id" validate:"required,notblank,max=255"`
}

// ValidationResult is returned to the caller for every validation attempt.
// Rejections are data, not errors: Valid=false with a user-facing message.
type ValidationResult struct {
	Valid           bool   `json:"valid"`
	Message         string `json:"message"`
	CouponCode      string `json:"coupon_code,omitempty"`
	OriginalPrice   int    `json:"original_price,omitempty"`
	DiscountedPrice int    `json:"discounted_price,omitempty"`
}

// DeleteCouponResult reports what the delete operation actually did: coupons
// with redemption history are deactivated instead of removed.
type DeleteCouponResult struct {
	Deleted         bool   `json:"deleted"`
	Deactivated     bool   `json:"deactivated"`
	RedemptionCount int    `json:"redemption_count"`
	Message         string `json:"message"`
}
