package service

import "errors"

var (
	// ErrCouponExists is returned when attempting to create a coupon whose code is taken
	ErrCouponExists = errors.New("coupon already exists")

	// ErrCouponNotFound is returned when a coupon code cannot be found
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrServiceExists is returned when attempting to create a service whose id is taken
	ErrServiceExists = errors.New("service already exists")

	// ErrServiceNotFound is returned when a service id cannot be found
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrResetNotConfirmed is returned when a bulk reset lacks the RESET confirmation
	ErrResetNotConfirmed = errors.New("reset not confirmed")

	// ErrInvalidCredentials is returned when an admin login fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)
