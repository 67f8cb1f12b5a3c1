package model

import "time"

// Booking is a customer's request to join a service program, persisted when
// the public booking form is submitted.
type Booking struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	ServiceID     string    `json:"service_id"`
	ServiceTitle  string    `json:"service_title"`
	CouponCode    string    `json:"coupon_code,omitempty"`
	OriginalPrice int       `json:"original_price"`
	FinalPrice    int       `json:"final_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBookingRequest is the DTO for POST /api/bookings. CouponCode is
// optional; when present the redemption happens in the same transaction as
// the booking insert.
type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,notblank,max=255"`
	CustomerPhone string `json:"customer_phone" validate:"required,notblank,max=32"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=255"`
	ServiceID     string `json:"service_id" validate:"required,notblank,max=255"`
	CouponCode    string `json:"coupon_code" validate:"omitempty,max=64"`
}

// BookingResponse reports the persisted booking plus whether the coupon the
// customer carried actually applied. A stale or exhausted coupon does not
// block the booking itself.
type BookingResponse struct {
	Booking       Booking `json:"booking"`
	CouponApplied bool    `json:"coupon_applied"`
	CouponMessage string  `json:"coupon_message,omitempty"`
}
