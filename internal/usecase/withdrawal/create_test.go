package withdrawal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	seller = domain.Actor{UserID: "user-1", ShopID: "shop-1", Capabilities: []domain.Capability{domain.CapabilitySeller}}
	admin  = domain.Actor{UserID: "admin-1", Capabilities: []domain.Capability{domain.CapabilityAdmin}}
)

type fixture struct {
	withdrawals *MockWithdrawalRepository
	shops       *MockShopRepository
	balances    *MockBalanceRepository
	tx          *MockTransactor
	mailer      *MockMailer
	publisher   *MockPublisher
	uc          *DefaultWithdrawalUsecase
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		withdrawals: new(MockWithdrawalRepository),
		shops:       new(MockShopRepository),
		balances:    new(MockBalanceRepository),
		tx:          new(MockTransactor),
		mailer:      new(MockMailer),
		publisher:   new(MockPublisher),
	}
	uc, err := NewDefaultWithdrawalUsecase(f.withdrawals, f.shops, f.balances, f.tx, f.mailer, f.publisher, nil, zap.NewNop(), opts)
	require.NoError(t, err)
	uc.newID = func() string { return "wd-1" }
	uc.now = func() time.Time { return fixedNow }
	f.uc = uc
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.withdrawals.AssertExpectations(t)
	f.shops.AssertExpectations(t)
	f.balances.AssertExpectations(t)
	f.tx.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func acmeShop() *domain.Shop {
	return &domain.Shop{
		ID:               "shop-1",
		Name:             "Acme",
		Email:            "acme@example.com",
		AvailableBalance: decimal.NewFromInt(500),
	}
}

func TestRequestWithdrawal_Success(t *testing.T) {
	f := newFixture(t, Options{NotifyTimeout: time.Second})

	f.tx.On("WithinShopLock", mock.Anything, "shop-1", mock.Anything).Return(nil).Once()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(acmeShop(), nil).Once()
	f.withdrawals.On("CreateWithdrawal", mock.Anything, mock.MatchedBy(func(w *domain.Withdrawal) bool {
		return w.ID == "wd-1" &&
			w.ShopID == "shop-1" &&
			w.Status == domain.WithdrawalProcessing &&
			w.Amount.Equal(decimal.NewFromInt(200)) &&
			w.Seller == domain.SellerSnapshot{ShopID: "shop-1", ShopName: "Acme", Email: "acme@example.com"} &&
			w.CreatedAt.Equal(fixedNow) && w.UpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()
	f.balances.On("Debit", mock.Anything, "shop-1", decEq("200")).Return(decimal.NewFromInt(300), nil).Once()
	f.mailer.On("Send", mock.Anything, "acme@example.com", "Withdraw Request Received",
		"Hello Acme, your withdraw request of $200 has been received and is being processed. It will take 3 to 7 days.").
		Return(nil).Once()
	f.publisher.On("PublishWithdrawal", mock.Anything, mock.MatchedBy(func(e domain.WithdrawalEvent) bool {
		return e.Type == domain.WithdrawalCreated && e.WithdrawalID == "wd-1" && e.Balance != nil && e.Balance.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()

	out, err := f.uc.RequestWithdrawal(context.Background(), seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(200)})

	require.NoError(t, err)
	assert.Equal(t, "wd-1", out.Withdrawal.ID)
	assert.Equal(t, domain.WithdrawalProcessing, out.Withdrawal.Status)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(300)))
	assert.Empty(t, out.Warnings)
	f.assertExpectations(t)
}

func TestRequestWithdrawal_NotificationFailureIsWarning(t *testing.T) {
	f := newFixture(t, Options{NotifyTimeout: time.Second})

	f.tx.On("WithinShopLock", mock.Anything, "shop-1", mock.Anything).Return(nil).Once()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(acmeShop(), nil).Once()
	f.withdrawals.On("CreateWithdrawal", mock.Anything, mock.Anything).Return(nil).Once()
	f.balances.On("Debit", mock.Anything, "shop-1", decEq("200")).Return(decimal.NewFromInt(300), nil).Once()
	f.mailer.On("Send", mock.Anything, "acme@example.com", mock.Anything, mock.Anything).
		Return(errors.New("smtp relay unavailable")).Once()
	f.publisher.On("PublishWithdrawal", mock.Anything, mock.Anything).Return(nil).Maybe()

	out, err := f.uc.RequestWithdrawal(context.Background(), seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(200)})

	require.NoError(t, err)
	require.NotNil(t, out.Withdrawal)
	assert.Equal(t, []string{notificationWarning}, out.Warnings)
	f.assertExpectations(t)
}

func TestRequestWithdrawal_NotificationTimeoutIsBounded(t *testing.T) {
	f := newFixture(t, Options{NotifyTimeout: 20 * time.Millisecond})

	block := make(chan struct{})
	defer close(block)

	f.tx.On("WithinShopLock", mock.Anything, "shop-1", mock.Anything).Return(nil).Once()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(acmeShop(), nil).Once()
	f.withdrawals.On("CreateWithdrawal", mock.Anything, mock.Anything).Return(nil).Once()
	f.balances.On("Debit", mock.Anything, "shop-1", decEq("200")).Return(decimal.NewFromInt(300), nil).Once()
	// the mailer ignores its context
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-block }).
		Return(nil).Once()
	f.publisher.On("PublishWithdrawal", mock.Anything, mock.Anything).Return(nil).Maybe()

	start := time.Now()
	out, err := f.uc.RequestWithdrawal(context.Background(), seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(200)})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, []string{notificationWarning}, out.Warnings)
}

func TestRequestWithdrawal_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"-5", "0", "10.001", "1e100000000", "1e-100000000", "1e30", "1000000000000000000", "-1e100000000"} {
		t.Run(amount, func(t *testing.T) {
			f := newFixture(t, Options{})

			_, err := f.uc.RequestWithdrawal(context.Background(), seller,
				withdrawaldto.RequestWithdrawalInput{Amount: decimal.RequireFromString(amount)})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			f.tx.AssertNotCalled(t, "WithinShopLock", mock.Anything, mock.Anything, mock.Anything)
			f.balances.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
			f.withdrawals.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
		})
	}
}

func TestValidateAmount_Bounds(t *testing.T) {
	for _, amount := range []string{"0.01", "10.000", "999999999999999999.99", "1e17"} {
		assert.NoError(t, validateAmount(decimal.RequireFromString(amount)), amount)
	}
}

func TestValidateAmount_HugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	for _, amount := range []string{"1e2000000000", "1e-2000000000", "123456789e-2000000000"} {
		assert.ErrorIs(t, validateAmount(decimal.RequireFromString(amount)), domain.ErrValidation, amount)
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestRequestWithdrawal_RequiresSeller(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.uc.RequestWithdrawal(context.Background(), admin, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(10)})

	assert.ErrorIs(t, err, domain.ErrAuthorization)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))
	f.tx.AssertNotCalled(t, "WithinShopLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestWithdrawal_ShopNotFound(t *testing.T) {
	f := newFixture(t, Options{})

	f.tx.On("WithinShopLock", mock.Anything, "shop-1", mock.Anything).Return(domain.ErrShopNotFound).Once()

	_, err := f.uc.RequestWithdrawal(context.Background(), seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(10)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishWithdrawal", mock.Anything, mock.Anything)
}

func TestRequestWithdrawal_InsufficientBalance(t *testing.T) {
	f := newFixture(t, Options{})

	f.tx.On("WithinShopLock", mock.Anything, "shop-1", mock.Anything).Return(nil).Once()
	f.shops.On("GetShopByID", mock.Anything, "shop-1").Return(acmeShop(), nil).Once()
	f.withdrawals.On("CreateWithdrawal", mock.Anything, mock.Anything).Return(nil).Once()
	f.balances.On("Debit", mock.Anything, "shop-1", decEq("600")).Return(decimal.Zero, domain.ErrInsufficientBalance).Once()

	out, err := f.uc.RequestWithdrawal(context.Background(), seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(600)})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}
