//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateCoupon_RejectionReasons walks the validation decision sequence
// through the HTTP API, one rejection at a time.
func TestValidateCoupon_RejectionReasons(t *testing.T) {
	cleanupTables(t)

	createTestService(t, "weight-loss-1", "Weight Loss", 4000, 3500)

	validate := func(code, serviceID string) (bool, string) {
		t.Helper()
		resp, err := postJSON(formatURL("/api/coupons/validate"), map[string]string{
			"code":       code,
			"service_id": serviceID,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Valid   bool   `json:"valid"`
			Message string `json:"message"`
		}
		require.NoError(t, readJSONResponse(resp, &result))
		return result.Valid, result.Message
	}

	// Unknown code.
	valid, msg := validate("GHOST", "weight-loss-1")
	assert.False(t, valid)
	assert.Equal(t, "invalid coupon code", msg)

	// Inactive coupon.
	createTestCoupon(t, "INACTIVE1", 5)
	_, err := testPool.Exec(context.Background(), "UPDATE coupons SET active = FALSE WHERE code = 'INACTIVE1'")
	require.NoError(t, err)
	valid, msg = validate("INACTIVE1", "weight-loss-1")
	assert.False(t, valid)
	assert.Equal(t, "coupon is inactive", msg)

	// Expired coupon.
	createTestCoupon(t, "EXPIRED1", 5)
	_, err = testPool.Exec(context.Background(), "UPDATE coupons SET expires_at = $1 WHERE code = 'EXPIRED1'",
		time.Now().Add(-time.Hour))
	require.NoError(t, err)
	valid, msg = validate("EXPIRED1", "weight-loss-1")
	assert.False(t, valid)
	assert.Equal(t, "coupon has expired", msg)

	// Exhausted coupon.
	createTestCoupon(t, "USEDUP1", 2)
	_, err = testPool.Exec(context.Background(), "UPDATE coupons SET usage_count = 2 WHERE code = 'USEDUP1'")
	require.NoError(t, err)
	valid, msg = validate("USEDUP1", "weight-loss-1")
	assert.False(t, valid)
	assert.Equal(t, "coupon limit reached", msg)

	// Coupon scoped to a different service.
	createTestCoupon(t, "SCOPED1", 5)
	_, err = testPool.Exec(context.Background(), "UPDATE coupons SET applicable_services = '{zumba-1}' WHERE code = 'SCOPED1'")
	require.NoError(t, err)
	valid, msg = validate("SCOPED1", "weight-loss-1")
	assert.False(t, valid)
	assert.Equal(t, "coupon not applicable to this service", msg)

	// Unknown service.
	createTestCoupon(t, "GOODCODE", 5)
	valid, msg = validate("GOODCODE", "no-such-service")
	assert.False(t, valid)
	assert.Equal(t, "service not found", msg)

	// Finally, a clean acceptance.
	valid, msg = validate("goodcode", "weight-loss-1")
	assert.True(t, valid, "lowercase input should validate against the stored uppercase code")
	assert.Equal(t, "coupon applied", msg)
}

// TestCouponAdminCRUD exercises the admin coupon surface end to end.
func TestCouponAdminCRUD(t *testing.T) {
	cleanupTables(t)
	token := adminToken(t)

	// Duplicate create conflicts.
	body := map[string]any{"code": "DUP1", "discount_value": 500, "max_redemptions": 3}
	resp, err := authJSON(http.MethodPost, formatURL("/api/coupons"), body, token)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = authJSON(http.MethodPost, formatURL("/api/coupons"), body, token)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Status toggle round trips.
	resp, err = authJSON(http.MethodPatch, formatURL("/api/coupons/DUP1/status"), map[string]bool{"active": false}, token)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = authJSON(http.MethodGet, formatURL("/api/coupons/DUP1"), nil, token)
	require.NoError(t, err)
	var coupon struct {
		Active bool `json:"active"`
	}
	require.NoError(t, readJSONResponse(resp, &coupon))
	assert.False(t, coupon.Active)

	// Never-redeemed coupon hard-deletes.
	resp, err = authJSON(http.MethodDelete, formatURL("/api/coupons/DUP1"), nil, token)
	require.NoError(t, err)
	var deleteResult struct {
		Deleted     bool `json:"deleted"`
		Deactivated bool `json:"deactivated"`
	}
	require.NoError(t, readJSONResponse(resp, &deleteResult))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, deleteResult.Deleted)
	assert.False(t, deleteResult.Deactivated)

	resp, err = authJSON(http.MethodGet, formatURL("/api/coupons/DUP1"), nil, token)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestPermanentDelete removes a redeemed coupon and leaves its redemption
// records orphaned.
func TestPermanentDelete(t *testing.T) {
	cleanupTables(t)
	token := adminToken(t)

	createTestService(t, "zumba-1", "Zumba", 1800, 1600)
	createTestCoupon(t, "NUKEME", 10)

	resp, err := postJSON(formatURL("/api/bookings"), map[string]string{
		"customer_name":  "Priya",
		"customer_phone": "9876543210",
		"service_id":     "zumba-1",
		"coupon_code":    "NUKEME",
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = authJSON(http.MethodDelete, formatURL("/api/coupons/NUKEME/permanent"), nil, token)
	require.NoError(t, err)
	var result struct {
		Deleted             bool `json:"deleted"`
		OrphanedRedemptions int  `json:"orphaned_redemptions"`
	}
	require.NoError(t, readJSONResponse(resp, &result))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, result.Deleted)
	assert.Equal(t, 1, result.OrphanedRedemptions)

	// The coupon row is gone but the redemption record survives.
	var couponCount, redemptionCount int
	require.NoError(t, testPool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM coupons WHERE code = 'NUKEME'").Scan(&couponCount))
	require.NoError(t, testPool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM coupon_redemptions WHERE coupon_code = 'NUKEME'").Scan(&redemptionCount))
	assert.Equal(t, 0, couponCount)
	assert.Equal(t, 1, redemptionCount)
}
