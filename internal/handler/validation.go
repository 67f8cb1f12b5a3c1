package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// jsonFieldNames maps struct field names to their wire names so validation
// messages talk about the JSON the caller actually sent.
var jsonFieldNames = map[string]string{
	"Code":               "code",
	"DiscountType":       "discount_type",
	"DiscountValue":      "discount_value",
	"ApplicableServices": "applicable_services",
	"MaxRedemptions":     "max_redemptions",
	"ExpiresAt":          "expires_at",
	"ServiceID":          "service_id",
	"CustomerName":       "customer_name",
	"CustomerPhone":      "customer_phone",
	"CustomerEmail":      "customer_email",
	"CouponCode":         "coupon_code",
	"Title":              "title",
	"BasePrice":          "base_price",
	"DiscountedPrice":    "discounted_price",
	"Trainer":            "trainer",
	"Capacity":           "capacity",
	"Features":           "features",
	"Timings":            "timings",
	"Active":             "active",
	"Confirm":            "confirm",
	"Note":               "note",
	"Username":           "username",
	"Password":           "password",
}

// formatValidationError converts validator errors into user-facing messages.
// Only the first failing field is reported.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field, ok := jsonFieldNames[fe.Field()]
			if !ok {
				field = strings.ToLower(fe.Field())
			}

			switch fe.Tag() {
			case "required":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be blank"
			case "max":
				return "invalid request: " + field + " exceeds maximum length"
			case "gte":
				return "invalid request: " + field + " must be at least " + fe.Param()
			case "oneof":
				return "invalid request: " + field + " must be one of: " + fe.Param()
			case "email":
				return "invalid request: " + field + " must be a valid email address"
			case "couponcode":
				return "invalid request: " + field + " may only contain letters, digits, hyphens and underscores"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}
