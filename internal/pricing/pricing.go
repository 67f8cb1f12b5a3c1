// Package pricing resolves the coupon price for a service offering.
//
// The studio sells a fixed coupon price per program category rather than
// deriving one from the coupon's discount value: every weight-loss program
// goes for 3000 with a coupon, strength training and zumba for 1500.
// Categories are recognized by substring on the service id and title.
package pricing

import (
	"strings"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// Category coupon prices, in rupees.
const (
	WeightLossPrice = 3000
	StrengthPrice   = 1500
	ZumbaPrice      = 1500
)

// categoryPrices is checked in order; the first keyword found in the
// service id or title wins.
var categoryPrices = []struct {
	keyword string
	price   int
}{
	{"weight", WeightLossPrice},
	{"strength", StrengthPrice},
	{"zumba", ZumbaPrice},
}

// CouponPrice returns the price a coupon-bearing customer pays for svc.
// Services outside the known categories fall back to their own stored
// discounted price, then base price.
func CouponPrice(svc *model.Service) int {
	id := strings.ToLower(svc.ID)
	title := strings.ToLower(svc.Title)

	for _, c := range categoryPrices {
		if strings.Contains(id, c.keyword) || strings.Contains(title, c.keyword) {
			return c.price
		}
	}

	if svc.DiscountedPrice > 0 {
		return svc.DiscountedPrice
	}
	return svc.BasePrice
}
