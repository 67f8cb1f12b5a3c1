package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

func TestCouponPrice_CategoryTable(t *testing.T) {
	tests := []struct {
		name string
		svc  model.Service
		want int
	}{
		{
			name: "weight keyword in id overrides stored prices",
			svc:  model.Service{ID: "weight-loss-1", Title: "Morning Batch", BasePrice: 5000, DiscountedPrice: 4500},
			want: 3000,
		},
		{
			name: "weight keyword in title",
			svc:  model.Service{ID: "program-7", Title: "Weight Loss Evening", BasePrice: 5000},
			want: 3000,
		},
		{
			name: "strength keyword",
			svc:  model.Service{ID: "strength-training-2", Title: "Strength", BasePrice: 2500, DiscountedPrice: 2000},
			want: 1500,
		},
		{
			name: "zumba keyword",
			svc:  model.Service{ID: "zumba-1", Title: "Zumba Dance Fitness", BasePrice: 2000},
			want: 1500,
		},
		{
			name: "case insensitive match",
			svc:  model.Service{ID: "ZUMBA-SPECIAL", Title: "ZUMBA", BasePrice: 2000},
			want: 1500,
		},
		{
			name: "weight wins over strength when both appear",
			svc:  model.Service{ID: "weight-strength-combo", Title: "Combo", BasePrice: 6000},
			want: 3000,
		},
		{
			name: "unknown category falls back to discounted price",
			svc:  model.Service{ID: "yoga-1", Title: "Yoga", BasePrice: 1800, DiscountedPrice: 1200},
			want: 1200,
		},
		{
			name: "unknown category without discounted price uses base price",
			svc:  model.Service{ID: "yoga-1", Title: "Yoga", BasePrice: 1800},
			want: 1800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := tt.svc
			assert.Equal(t, tt.want, CouponPrice(&svc))
		})
	}
}
