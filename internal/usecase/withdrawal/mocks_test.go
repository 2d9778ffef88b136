package withdrawal

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) CreateWithdrawal(ctx context.Context, w *domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetWithdrawalByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]*domain.Withdrawal, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, id string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) FindUnrecordedWithdrawals(ctx context.Context, limit int) ([]*domain.Withdrawal, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Withdrawal), args.Error(1)
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) GetShops(ctx context.Context, page, limit int) ([]*domain.Shop, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*domain.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *MockShopRepository) UpdateWithdrawMethod(ctx context.Context, shopID string, method *domain.WithdrawMethod) error {
	args := m.Called(ctx, shopID, method)
	return args.Error(0)
}

func (m *MockShopRepository) GetShopTransactions(ctx context.Context, shopID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockShopRepository) DeleteShop(ctx context.Context, shopID string) error {
	args := m.Called(ctx, shopID)
	return args.Error(0)
}

type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Debit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, shopID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceRepository) Credit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, shopID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceRepository) AppendTransaction(ctx context.Context, shopID string, tx domain.Transaction) (bool, error) {
	args := m.Called(ctx, shopID, tx)
	return args.Bool(0), args.Error(1)
}

// MockTransactor runs fn inline unless the expectation returns an error.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinShopLock(ctx context.Context, shopID string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, shopID, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithdrawal(ctx context.Context, event domain.WithdrawalEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
