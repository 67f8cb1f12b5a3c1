package model

import "time"

// Redemption is one successful application of a coupon to a booking.
// Records are append-only; only the bulk reset removes them.
type Redemption struct {
	ID            string    `json:"id"`
	CouponCode    string    `json:"coupon_code"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	ServiceID     string    `json:"service_id"`
	ServiceTitle  string    `json:"service_title"`
	OriginalPrice int       `json:"original_price"`
	FinalPrice    int       `json:"final_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResetAudit is the append-only trail of bulk redemption resets.
type ResetAudit struct {
	ID                 string    `json:"id"`
	PerformedBy        string    `json:"performed_by"`
	CouponsReset       int       `json:"coupons_reset"`
	RedemptionsDeleted int       `json:"redemptions_deleted"`
	Note               string    `json:"note"`
	CreatedAt          time.Time `json:"created_at"`
}

// ResetRequest is the DTO for POST /api/redemptions/reset. Confirm must be
// the literal string "RESET" before the operation runs.
type ResetRequest struct {
	Confirm string `json:"confirm" validate:"required"`
	Note    string `json:"note" validate:"omitempty,max=1024"`
}

// ResetResult reports what the bulk reset touched.
type ResetResult struct {
	CouponsReset       int    `json:"coupons_reset"`
	RedemptionsDeleted int    `json:"redemptions_deleted"`
	AuditID            string `json:"audit_id,omitempty"`
}
