package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dreamteamservicespvt/rebuild-studio-server/internal/model"
	"github.com/dreamteamservicespvt/rebuild-studio-server/pkg/database"
)

// mockCouponRepository is a mock implementation of CouponRepositoryInterface.
type mockCouponRepository struct {
	insertFn         func(ctx context.Context, coupon *model.Coupon) error
	getByCodeFn      func(ctx context.Context, code string) (*model.Coupon, error)
	listFn           func(ctx context.Context) ([]model.Coupon, error)
	getForUpdateFn   func(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error)
	incrementUsageFn func(ctx context.Context, tx database.TxQuerier, code string) error
	setActiveFn      func(ctx context.Context, code string, active bool) error
	deleteFn         func(ctx context.Context, code string) error
	resetAllUsageFn  func(ctx context.Context, tx database.TxQuerier) (int, error)
}

func (m *mockCouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockCouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Coupon{}, nil
}

func (m *mockCouponRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error) {
	if m.getForUpdateFn != nil {
		return m.getForUpdateFn(ctx, tx, code)
	}
	return nil, ErrCouponNotFound
}

func (m *mockCouponRepository) IncrementUsage(ctx context.Context, tx database.TxQuerier, code string) error {
	if m.incrementUsageFn != nil {
		return m.incrementUsageFn(ctx, tx, code)
	}
	return nil
}

func (m *mockCouponRepository) SetActive(ctx context.Context, code string, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, code, active)
	}
	return nil
}

func (m *mockCouponRepository) Delete(ctx context.Context, code string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, code)
	}
	return nil
}

func (m *mockCouponRepository) ResetAllUsage(ctx context.Context, tx database.TxQuerier) (int, error) {
	if m.resetAllUsageFn != nil {
		return m.resetAllUsageFn(ctx, tx)
	}
	return 0, nil
}

// mockRedemptionRepository is a mock implementation of RedemptionRepositoryInterface.
type mockRedemptionRepository struct {
	insertFn           func(ctx context.Context, tx database.TxQuerier, red *model.Redemption) error
	countByCouponFn    func(ctx context.Context, couponCode string) (int, error)
	listFn             func(ctx context.Context) ([]model.Redemption, error)
	deleteAllFn        func(ctx context.Context, tx database.TxQuerier) (int, error)
	globalCountFn      func(ctx context.Context) (int, error)
	incrementGlobalFn  func(ctx context.Context, tx database.TxQuerier, cap int) (bool, error)
	resetGlobalFn      func(ctx context.Context, tx database.TxQuerier) error
	insertResetAuditFn func(ctx context.Context, audit *model.ResetAudit) error
	listResetAuditsFn  func(ctx context.Context) ([]model.ResetAudit, error)
}

func (m *mockRedemptionRepository) Insert(ctx context.Context, tx database.TxQuerier, red *model.Redemption) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, tx, red)
	}
	return nil
}

func (m *mockRedemptionRepository) CountByCoupon(ctx context.Context, couponCode string) (int, error) {
	if m.countByCouponFn != nil {
		return m.countByCouponFn(ctx, couponCode)
	}
	return 0, nil
}

func (m *mockRedemptionRepository) List(ctx context.Context) ([]model.Redemption, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Redemption{}, nil
}

func (m *mockRedemptionRepository) DeleteAll(ctx context.Context, tx database.TxQuerier) (int, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, tx)
	}
	return 0, nil
}

func (m *mockRedemptionRepository) GlobalCount(ctx context.Context) (int, error) {
	if m.globalCountFn != nil {
		return m.globalCountFn(ctx)
	}
	return 0, nil
}

func (m *mockRedemptionRepository) IncrementGlobal(ctx context.Context, tx database.TxQuerier, cap int) (bool, error) {
	if m.incrementGlobalFn != nil {
		return m.incrementGlobalFn(ctx, tx, cap)
	}
	return true, nil
}

func (m *mockRedemptionRepository) ResetGlobal(ctx context.Context, tx database.TxQuerier) error {
	if m.resetGlobalFn != nil {
		return m.resetGlobalFn(ctx, tx)
	}
	return nil
}

func (m *mockRedemptionRepository) InsertResetAudit(ctx context.Context, audit *model.ResetAudit) error {
	if m.insertResetAuditFn != nil {
		return m.insertResetAuditFn(ctx, audit)
	}
	return nil
}

func (m *mockRedemptionRepository) ListResetAudits(ctx context.Context) ([]model.ResetAudit, error) {
	if m.listResetAuditsFn != nil {
		return m.listResetAuditsFn(ctx)
	}
	return []model.ResetAudit{}, nil
}

// mockServiceRepository is a mock implementation of ServiceRepositoryInterface.
type mockServiceRepository struct {
	insertFn  func(ctx context.Context, svc *model.Service) error
	getByIDFn func(ctx context.Context, id string) (*model.Service, error)
	listFn    func(ctx context.Context) ([]model.Service, error)
	updateFn  func(ctx context.Context, svc *model.Service) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockServiceRepository) Insert(ctx context.Context, svc *model.Service) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, svc)
	}
	return nil
}

func (m *mockServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Service{}, nil
}

func (m *mockServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, svc)
	}
	return nil
}

func (m *mockServiceRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockBookingRepository is a mock implementation of BookingRepositoryInterface.
type mockBookingRepository struct {
	insertFn func(ctx context.Context, tx database.TxQuerier, b *model.Booking) error
	listFn   func(ctx context.Context) ([]model.Booking, error)
}

func (m *mockBookingRepository) Insert(ctx context.Context, tx database.TxQuerier, b *model.Booking) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, tx, b)
	}
	return nil
}

func (m *mockBookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Booking{}, nil
}

// mockTx is a mock implementation of pgx.Tx for testing transactions.
type mockTx struct {
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions not supported")
}

func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitFn != nil {
		return m.commitFn(ctx)
	}
	return nil
}

func (m *mockTx) Rollback(ctx context.Context) error {
	if m.rollbackFn != nil {
		return m.rollbackFn(ctx)
	}
	return nil
}

func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (m *mockTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *mockTx) Conn() *pgx.Conn {
	return nil
}

// mockTxBeginner is a mock implementation of TxBeginner.
type mockTxBeginner struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginFn != nil {
		return m.beginFn(ctx)
	}
	return &mockTx{}, nil
}

func intPtr(i int) *int {
	return &i
}
