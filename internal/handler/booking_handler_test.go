package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/service"
	appvalidator "github.com/dreamteamservicespvt/rebuild-studio-server/internal/validator"
)

// mockBookingService is a mock implementation of BookingServiceInterface.
type mockBookingService struct {
	submitFn func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error)
	listFn   func(ctx context.Context) ([]model.Booking, error)
}

func (m *mockBookingService) Submit(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, req)
	}
	return &model.BookingResponse{}, nil
}

func (m *mockBookingService) List(ctx context.Context) ([]model.Booking, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Booking{}, nil
}

func setupBookingApp(mockSvc *mockBookingService) *fiber.App {
	app := fiber.New()
	h := NewBookingHandler(mockSvc, appvalidator.New())
	app.Post("/api/bookings", h.CreateBooking)
	app.Get("/api/bookings", h.ListBookings)
	return app
}

func TestCreateBooking_Success(t *testing.T) {
	mockSvc := &mockBookingService{
		submitFn: func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
			return &model.BookingResponse{
				Booking: model.Booking{
					ID:            "b-1",
					CustomerName:  req.CustomerName,
					ServiceID:     req.ServiceID,
					CouponCode:    "SUMMER50",
					OriginalPrice: 4000,
					FinalPrice:    3000,
				},
				CouponApplied: true,
				CouponMessage: "coupon applied",
			}, nil
		},
	}
	app := setupBookingApp(mockSvc)

	body := `{"customer_name": "Priya Sharma", "customer_phone": "9876543210", "service_id": "weight-loss-1", "coupon_code": "SUMMER50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result model.BookingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.CouponApplied)
	assert.Equal(t, 3000, result.Booking.FinalPrice)
}

func TestCreateBooking_CouponSkippedStill201(t *testing.T) {
	mockSvc := &mockBookingService{
		submitFn: func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
			return &model.BookingResponse{
				Booking:       model.Booking{ID: "b-2", OriginalPrice: 4000, FinalPrice: 4000},
				CouponApplied: false,
				CouponMessage: "coupon limit reached",
			}, nil
		},
	}
	app := setupBookingApp(mockSvc)

	body := `{"customer_name": "Priya Sharma", "customer_phone": "9876543210", "service_id": "weight-loss-1", "coupon_code": "SUMMER50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "a skipped coupon must not fail the booking")

	var result model.BookingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.CouponApplied)
	assert.Equal(t, "coupon limit reached", result.CouponMessage)
	assert.Equal(t, 4000, result.Booking.FinalPrice)
}

func TestCreateBooking_MissingName(t *testing.T) {
	app := setupBookingApp(&mockBookingService{})

	body := `{"customer_phone": "9876543210", "service_id": "weight-loss-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: customer_name is required", result["error"])
}

func TestCreateBooking_BadEmail(t *testing.T) {
	app := setupBookingApp(&mockBookingService{})

	body := `{"customer_name": "Priya", "customer_phone": "9876543210", "customer_email": "not-an-email", "service_id": "weight-loss-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: customer_email must be a valid email address", result["error"])
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	mockSvc := &mockBookingService{
		submitFn: func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
			return nil, service.ErrServiceNotFound
		},
	}
	app := setupBookingApp(mockSvc)

	body := `{"customer_name": "Priya", "customer_phone": "9876543210", "service_id": "ghost"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListBookings(t *testing.T) {
	mockSvc := &mockBookingService{
		listFn: func(ctx context.Context) ([]model.Booking, error) {
			return []model.Booking{{ID: "b-1"}, {ID: "b-2"}}, nil
		},
	}
	app := setupBookingApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bookings []model.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bookings))
	assert.Len(t, bookings, 2)
}
