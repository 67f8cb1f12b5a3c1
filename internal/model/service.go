package model

import "time"

// Service is a purchasable program offering (weight loss, strength training,
// zumba, ...). The slug ID doubles as the storage key.
type Service struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	BasePrice       int       `json:"base_price"`
	DiscountedPrice int       `json:"discounted_price"`
	Trainer         string    `json:"trainer"`
	Capacity        int       `json:"capacity"`
	Description     string    `json:"description"`
	Features        []string  `json:"features"`
	Timings         string    `json:"timings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateServiceRequest is the DTO for creating a service offering.
type CreateServiceRequest struct {
	ID              string   `json:"id" validate:"required,notblank,max=255"`
	Title           string   `json:"title" validate:"required,notblank,max=255"`
	BasePrice       *int     `json:"base_price" validate:"required,gte=0"`
	DiscountedPrice *int     `json:"discounted_price" validate:"omitempty,gte=0"`
	Trainer         string   `json:"trainer" validate:"omitempty,max=255"`
	Capacity        *int     `json:"capacity" validate:"omitempty,gte=1"`
	Description     string   `json:"description"`
	Features        []string `json:"features" validate:"omitempty,dive,notblank"`
	Timings         string   `json:"timings" validate:"omitempty,max=255"`
}

// UpdateServiceRequest is the DTO for replacing a service's attributes.
type UpdateServiceRequest struct {
	Title           string   `json:"title" validate:"required,notblank,max=255"`
	BasePrice       *int     `json:"base_price" validate:"required,gte=0"`
	DiscountedPrice *int     `json:"discounted_price" validate:"omitempty,gte=0"`
	Trainer         string   `json:"trainer" validate:"omitempty,max=255"`
	Capacity        *int     `json:"capacity" validate:"omitempty,gte=1"`
	Description     string   `json:"description"`
	Features        []string `json:"features" validate:"omitempty,dive,notblank"`
	Timings         string   `json:"timings" validate:"omitempty,max=255"`
}
