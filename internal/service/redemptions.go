package service

import (
	"context"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
)

// ListRedemptions returns all redemption records, newest first.
func (s *CouponService) ListRedemptions(ctx context.Context) ([]model.Redemption, error) {
	return s.redemptionRepo.List(ctx)
}

// RedemptionCount returns the server-authoritative global redemption total
// alongside the cap it is measured against.
func (s *CouponService) RedemptionCount(ctx context.Context) (total, cap int, err error) {
	total, err = s.redemptionRepo.GlobalCount(ctx)
	if err != nil {
		return 0, 0, err
	}
	return total, GlobalRedemptionCap, nil
}

// ListResetAudits returns the bulk-reset audit trail, newest first.
func (s *CouponService) ListResetAudits(ctx context.Context) ([]model.ResetAudit, error) {
	return s.redemptionRepo.ListResetAudits(ctx)
}
