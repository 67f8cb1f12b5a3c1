package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// ResetConfirmation is the literal the admin must submit before a bulk reset
// runs. A UI convenience carried over to the API as a hard precondition.
const ResetConfirmation = "RESET"

// ResetService performs the bulk redemption reset: zero every coupon's usage
// counter, delete every redemption record, and zero the global counter, all
// in one transaction.
type ResetService struct {
	pool           TxBeginner
	couponRepo     CouponRepositoryInterface
	redemptionRepo RedemptionRepositoryInterface
}

// NewResetService creates a new ResetService with the given pool and repositories.
func NewResetService(pool *pgxpool.Pool, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface) *ResetService {
	return &ResetService{pool: pool, couponRepo: couponRepo, redemptionRepo: redemptionRepo}
}

// NewResetServiceWithTxBeginner creates a ResetService with a custom TxBeginner.
// Primarily used for testing.
func NewResetServiceWithTxBeginner(pool TxBeginner, couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface) *ResetService {
	return &ResetService{pool: pool, couponRepo: couponRepo, redemptionRepo: redemptionRepo}
}

// Reset wipes all redemption history. The counters and records go in a single
// all-or-nothing transaction; the audit record is appended afterwards in a
// separate call, so a crash between the two leaves the reset effective but
// unaudited.
// Returns ErrResetNotConfirmed unless req.Confirm is exactly "RESET".
func (s *ResetService) Reset(ctx context.Context, performedBy string, req *model.ResetRequest) (*model.ResetResult, error) {
	if req == nil || req.Confirm != ResetConfirmation {
		return nil, ErrResetNotConfirmed
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	couponsReset, err := s.couponRepo.ResetAllUsage(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("reset coupon usage: %w", err)
	}

	redemptionsDeleted, err := s.redemptionRepo.DeleteAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("delete redemptions: %w", err)
	}

	if err := s.redemptionRepo.ResetGlobal(ctx, tx); err != nil {
		return nil, fmt.Errorf("reset global counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reset tx: %w", err)
	}

	result := &model.ResetResult{
		CouponsReset:       couponsReset,
		RedemptionsDeleted: redemptionsDeleted,
	}

	audit := &model.ResetAudit{
		ID:                 uuid.NewString(),
		PerformedBy:        performedBy,
		CouponsReset:       couponsReset,
		RedemptionsDeleted: redemptionsDeleted,
		Note:               req.Note,
	}
	if err := s.redemptionRepo.InsertResetAudit(ctx, audit); err != nil {
		// The reset already committed. Report it as done and flag the
		// missing audit entry instead of failing the request.
		log.Error().Err(err).
			Int("coupons_reset", couponsReset).
			Int("redemptions_deleted", redemptionsDeleted).
			Msg("reset committed but audit record failed")
		return result, nil
	}
	result.AuditID = audit.ID

	return result, nil
}
