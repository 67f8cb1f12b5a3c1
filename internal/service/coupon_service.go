package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/pricing"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

// GlobalRedemptionCap is the system-wide ceiling on redemptions across all
// coupons combined. Once reached, every validation is rejected regardless of
// the individual coupon's state.
const GlobalRedemptionCap = 30

// Rejection messages surfaced to customers by the validator.
const (
	MsgProgramLimitReached = "coupon program limit reached"
	MsgInvalidCode         = "invalid coupon code"
	MsgCouponInactive      = "coupon is inactive"
	MsgCouponExpired       = "coupon has expired"
	MsgCouponLimitReached  = "coupon limit reached"
	MsgNotApplicable       = "coupon not applicable to this service"
	MsgServiceNotFound     = "service not found"
	MsgCouponApplied       = "coupon applied"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, coupon *model.Coupon) error
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	GetForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error)
	IncrementUsage(ctx context.Context, tx database.TxQuerier, code string) error
	SetActive(ctx context.Context, code string, active bool) error
	Delete(ctx context.Context, code string) error
	ResetAllUsage(ctx context.Context, tx database.TxQuerier) (int, error)
}

// RedemptionRepositoryInterface defines the interface for redemption data access.
type RedemptionRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, red *model.Redemption) error
	CountByCoupon(ctx context.Context, couponCode string) (int, error)
	List(ctx context.Context) ([]model.Redemption, error)
	DeleteAll(ctx context.Context, tx database.TxQuerier) (int, error)
	GlobalCount(ctx context.Context) (int, error)
	IncrementGlobal(ctx context.Context, tx database.TxQuerier, cap int) (bool, error)
	ResetGlobal(ctx context.Context, tx database.TxQuerier) error
	InsertResetAudit(ctx context.Context, audit *model.ResetAudit) error
	ListResetAudits(ctx context.Context) ([]model.ResetAudit, error)
}

// ServiceRepositoryInterface defines the interface for service-offering data access.
type ServiceRepositoryInterface interface {
	Insert(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id string) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CouponService provides business logic for coupon operations.
type CouponService struct {
	pool           TxBeginner
	couponRepo     CouponRepositoryInterface
	redemptionRepo RedemptionRepositoryInterface
	serviceRepo    ServiceRepositoryInterface
}

// NewCouponService creates a new CouponService with the given pool and repositories.
func NewCouponService(pool *pgxpool.Pool, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface, serviceRepo ServiceRepositoryInterface) *CouponService {
	return &CouponService{
		pool:           pool,
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
		serviceRepo:    serviceRepo,
	}
}

// NewCouponServiceWithTxBeginner creates a CouponService with a custom TxBeginner.
// Primarily used for testing.
func NewCouponServiceWithTxBeginner(pool TxBeginner, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface, serviceRepo ServiceRepositoryInterface) *CouponService {
	return &CouponService{
		pool:           pool,
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
		serviceRepo:    serviceRepo,
	}
}

// NormalizeCode trims and uppercases a submitted coupon code. Codes are
// stored uppercase, so every lookup goes through this.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create creates a new coupon from the request.
// Returns ErrCouponExists if a coupon with the same code already exists.
// Returns ErrInvalidRequest if request data is nil or incomplete.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	// Defense-in-depth: check for nil pointers even though handler validates
	if req == nil || req.DiscountValue == nil || req.MaxRedemptions == nil {
		return nil, ErrInvalidRequest
	}

	discountType := req.DiscountType
	if discountType == "" {
		discountType = model.DiscountTypeFixed
	}

	applicable := req.ApplicableServices
	if applicable == nil {
		applicable = []string{}
	}

	coupon := &model.Coupon{
		Code:               NormalizeCode(req.Code),
		DiscountType:       discountType,
		DiscountValue:      *req.DiscountValue,
		ApplicableServices: applicable,
		MaxRedemptions:     *req.MaxRedemptions,
		Active:             true,
		ExpiresAt:          req.ExpiresAt,
	}
	if err := s.couponRepo.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// List returns all coupons.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.couponRepo.List(ctx)
}

// GetByCode retrieves a coupon by its code.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// SetStatus flips a coupon's active flag.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) SetStatus(ctx context.Context, code string, active bool) error {
	return s.couponRepo.SetActive(ctx, NormalizeCode(code), active)
}

// Delete removes a coupon if it has never been redeemed; otherwise the
// document stays and the coupon is flipped inactive, preserving the
// redemption history.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Delete(ctx context.Context, code string) (*model.DeleteCouponResult, error) {
	normalized := NormalizeCode(code)

	coupon, err := s.couponRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	count, err := s.redemptionRepo.CountByCoupon(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("count redemptions: %w", err)
	}

	if count == 0 {
		if err := s.couponRepo.Delete(ctx, normalized); err != nil {
			return nil, err
		}
		return &model.DeleteCouponResult{
			Deleted: true,
			Message: "coupon deleted",
		}, nil
	}

	if err := s.couponRepo.SetActive(ctx, normalized, false); err != nil {
		return nil, err
	}
	return &model.DeleteCouponResult{
		Deactivated:     true,
		RedemptionCount: count,
		Message:         fmt.Sprintf("coupon has %d redemptions and was deactivated instead of deleted", count),
	}, nil
}

// PermanentDelete hard-deletes a coupon regardless of redemption history,
// leaving any redemption records orphaned. Returns the number of records
// orphaned so the caller can report it.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) PermanentDelete(ctx context.Context, code string) (int, error) {
	normalized := NormalizeCode(code)

	count, err := s.redemptionRepo.CountByCoupon(ctx, normalized)
	if err != nil {
		return 0, fmt.Errorf("count redemptions: %w", err)
	}

	if err := s.couponRepo.Delete(ctx, normalized); err != nil {
		return 0, err
	}
	return count, nil
}

// Validate decides whether a coupon applies to a service and computes the
// price the customer would pay. It never mutates state: usage is only
// consumed when a booking is submitted.
//
// Checks run in order and the first failure wins:
// global cap, code lookup, active flag, expiry, per-coupon limit,
// service eligibility, service lookup.
func (s *CouponService) Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error) {
	if req == nil || req.ServiceID == "" {
		return nil, ErrInvalidRequest
	}

	total, err := s.redemptionRepo.GlobalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("read global redemption count: %w", err)
	}
	if total >= GlobalRedemptionCap {
		return &model.ValidationResult{Valid: false, Message: MsgProgramLimitReached}, nil
	}

	code := NormalizeCode(req.Code)
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return &model.ValidationResult{Valid: false, Message: MsgInvalidCode}, nil
	}

	if reject := evaluateCoupon(coupon, req.ServiceID, time.Now()); reject != "" {
		return &model.ValidationResult{Valid: false, Message: reject}, nil
	}

	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return &model.ValidationResult{Valid: false, Message: MsgServiceNotFound}, nil
	}

	return &model.ValidationResult{
		Valid:           true,
		Message:         MsgCouponApplied,
		CouponCode:      coupon.Code,
		OriginalPrice:   svc.BasePrice,
		DiscountedPrice: pricing.CouponPrice(svc),
	}, nil
}

// evaluateCoupon runs the per-coupon checks shared by validation and booking
// submission. Returns the rejection message, or "" when the coupon passes.
func evaluateCoupon(coupon *model.Coupon, serviceID string, now time.Time) string {
	if !coupon.Active {
		return MsgCouponInactive
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return MsgCouponExpired
	}
	if coupon.UsageCount >= coupon.MaxRedemptions {
		return MsgCouponLimitReached
	}
	if len(coupon.ApplicableServices) > 0 {
		eligible := false
		for _, id := range coupon.ApplicableServices {
			if id == serviceID {
				eligible = true
				break
			}
		}
		if !eligible {
			return MsgNotApplicable
		}
	}
	return ""
}
