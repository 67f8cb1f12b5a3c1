package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/pricing"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

// BookingRepositoryInterface defines the interface for booking data access.
type BookingRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, b *model.Booking) error
	List(ctx context.Context) ([]model.Booking, error)
}

// BookingService persists booking requests. When a booking carries a coupon,
// the booking insert, the coupon's usage increment, the global counter bump,
// and the redemption record all commit in one transaction.
type BookingService struct {
	pool           TxBeginner
	bookingRepo    BookingRepositoryInterface
	couponRepo     CouponRepositoryInterface
	redemptionRepo RedemptionRepositoryInterface
	serviceRepo    ServiceRepositoryInterface
}

// NewBookingService creates a new BookingService with the given pool and repositories.
func NewBookingService(pool *pgxpool.Pool, bookingRepo BookingRepositoryInterface, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface, serviceRepo ServiceRepositoryInterface) *BookingService {
	return &BookingService{
		pool:           pool,
		bookingRepo:    bookingRepo,
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
		serviceRepo:    serviceRepo,
	}
}

// NewBookingServiceWithTxBeginner creates a BookingService with a custom TxBeginner.
// Primarily used for testing.
func NewBookingServiceWithTxBeginner(pool TxBeginner, bookingRepo BookingRepositoryInterface, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface, serviceRepo ServiceRepositoryInterface) *BookingService {
	return &BookingService{
		pool:           pool,
		bookingRepo:    bookingRepo,
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
		serviceRepo:    serviceRepo,
	}
}

// Submit persists a booking request.
//
// A coupon that no longer passes its checks (deleted, deactivated, expired,
// exhausted, or the global cap was reached) does not fail the booking: the
// booking commits at the service's own price and the response reports why
// the coupon was skipped. The coupon row is locked FOR UPDATE and fully
// re-checked inside the transaction, so the usage counter can never overshoot
// its limit under concurrent submissions.
//
// Returns ErrServiceNotFound if the referenced service doesn't exist.
func (s *BookingService) Submit(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	booking := &model.Booking{
		ID:            uuid.NewString(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     svc.ID,
		ServiceTitle:  svc.Title,
		OriginalPrice: svc.BasePrice,
		FinalPrice:    svc.BasePrice,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	applied := false
	couponMsg := ""
	if req.CouponCode != "" {
		applied, couponMsg, err = s.redeemCoupon(ctx, tx, booking, svc, NormalizeCode(req.CouponCode))
		if err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Insert(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking tx: %w", err)
	}

	return &model.BookingResponse{
		Booking:       *booking,
		CouponApplied: applied,
		CouponMessage: couponMsg,
	}, nil
}

// redeemCoupon attempts to consume one use of the coupon inside the booking
// transaction. A failed check skips the redemption without failing the
// booking; only genuine database errors propagate.
func (s *BookingService) redeemCoupon(ctx context.Context, tx database.TxQuerier, booking *model.Booking, svc *model.Service, code string) (bool, string, error) {
	coupon, err := s.couponRepo.GetForUpdate(ctx, tx, code)
	if err != nil {
		if errors.Is(err, ErrCouponNotFound) {
			log.Warn().Str("coupon_code", code).Msg("coupon vanished between validation and booking")
			return false, MsgInvalidCode, nil
		}
		return false, "", fmt.Errorf("get coupon for update: %w", err)
	}

	if reject := evaluateCoupon(coupon, svc.ID, time.Now()); reject != "" {
		return false, reject, nil
	}

	// The counter row update is guarded by the cap, so two concurrent
	// bookings cannot both take the last slot.
	bumped, err := s.redemptionRepo.IncrementGlobal(ctx, tx, GlobalRedemptionCap)
	if err != nil {
		return false, "", fmt.Errorf("increment global counter: %w", err)
	}
	if !bumped {
		return false, MsgProgramLimitReached, nil
	}

	if err := s.couponRepo.IncrementUsage(ctx, tx, code); err != nil {
		return false, "", fmt.Errorf("increment usage: %w", err)
	}

	booking.CouponCode = coupon.Code
	booking.FinalPrice = pricing.CouponPrice(svc)

	red := &model.Redemption{
		ID:            uuid.NewString(),
		CouponCode:    coupon.Code,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		CustomerEmail: booking.CustomerEmail,
		ServiceID:     svc.ID,
		ServiceTitle:  svc.Title,
		OriginalPrice: booking.OriginalPrice,
		FinalPrice:    booking.FinalPrice,
	}
	if err := s.redemptionRepo.Insert(ctx, tx, red); err != nil {
		return false, "", fmt.Errorf("insert redemption: %w", err)
	}

	return true, MsgCouponApplied, nil
}

// List returns all bookings, newest first.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookingRepo.List(ctx)
}
