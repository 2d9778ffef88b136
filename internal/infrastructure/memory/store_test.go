package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithShop(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.PutShop(domain.Shop{ID: "shop-1", Name: "Acme", Email: "acme@example.com", AvailableBalance: decimal.NewFromInt(500)})
	return s
}

func TestWithinShopLock_RollsBackOnError(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinShopLock(ctx, "shop-1", func(ctx context.Context) error {
		require.NoError(t, s.CreateWithdrawal(ctx, &domain.Withdrawal{ID: "wd-1", ShopID: "shop-1", Amount: decimal.NewFromInt(100), Status: domain.WithdrawalProcessing}))
		_, err := s.Debit(ctx, "shop-1", decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = s.AppendTransaction(ctx, "shop-1", domain.Transaction{WithdrawalID: "wd-1", Status: domain.WithdrawalSucceed})
		require.NoError(t, err)
		require.NoError(t, s.UpdateWithdrawMethod(ctx, "shop-1", &domain.WithdrawMethod{Type: "bank"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	shop, err := s.GetShopByID(ctx, "shop-1")
	require.NoError(t, err)
	assert.True(t, shop.AvailableBalance.Equal(decimal.NewFromInt(500)))
	assert.Nil(t, shop.WithdrawMethod)

	_, err = s.GetWithdrawalByID(ctx, "wd-1")
	assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)

	history, err := s.GetShopTransactions(ctx, "shop-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestWithinShopLock_UnknownShop(t *testing.T) {
	s := NewStore()
	called := false

	err := s.WithinShopLock(context.Background(), "nope", func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrShopNotFound)
	assert.False(t, called)
}

func TestDebit(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()

	balance, err := s.Debit(ctx, "shop-1", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	_, err = s.Debit(ctx, "shop-1", decimal.RequireFromString("0.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestAppendTransaction_Idempotent(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()
	tx := domain.Transaction{WithdrawalID: "wd-1", Amount: decimal.NewFromInt(10), Status: domain.WithdrawalSucceed, UpdatedAt: time.Now()}

	ok, err := s.AppendTransaction(ctx, "shop-1", tx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AppendTransaction(ctx, "shop-1", tx)
	require.NoError(t, err)
	assert.False(t, ok)

	history, err := s.GetShopTransactions(ctx, "shop-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGetWithdrawals_SortAndPaginate(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, amount := range []int64{30, 10, 20} {
		require.NoError(t, s.CreateWithdrawal(ctx, &domain.Withdrawal{
			ID:        string(rune('a' + i)),
			ShopID:    "shop-1",
			Amount:    decimal.NewFromInt(amount),
			Status:    domain.WithdrawalProcessing,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	newest, total, err := s.GetWithdrawals(ctx, domain.WithdrawalFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, newest, 2)
	assert.Equal(t, "c", newest[0].ID)
	assert.Equal(t, "b", newest[1].ID)

	byAmount, _, err := s.GetWithdrawals(ctx, domain.WithdrawalFilter{SortBy: "amount", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, byAmount, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{byAmount[0].ID, byAmount[1].ID, byAmount[2].ID})

	past, total, err := s.GetWithdrawals(ctx, domain.WithdrawalFilter{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, past)
}

func TestDeleteShop_HidesShop(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteShop(ctx, "shop-1"))

	_, err := s.GetShopByID(ctx, "shop-1")
	assert.ErrorIs(t, err, domain.ErrShopNotFound)
	shops, total, err := s.GetShops(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, shops)
	assert.Zero(t, total)
	assert.ErrorIs(t, s.DeleteShop(ctx, "shop-1"), domain.ErrShopNotFound)
}

func TestReads_SeeOnlyCommittedWork(t *testing.T) {
	s := newStoreWithShop(t)
	ctx := context.Background()
	boom := errors.New("insufficient")

	staged := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.WithinShopLock(ctx, "shop-1", func(ctx context.Context) error {
			if err := s.CreateWithdrawal(ctx, &domain.Withdrawal{ID: "wd-1", ShopID: "shop-1", Amount: decimal.NewFromInt(100), Status: domain.WithdrawalProcessing}); err != nil {
				return err
			}
			if _, err := s.Debit(ctx, "shop-1", decimal.NewFromInt(100)); err != nil {
				return err
			}
			// reads inside the unit see its own writes
			if _, err := s.GetWithdrawalByID(ctx, "wd-1"); err != nil {
				return err
			}
			close(staged)
			<-release
			return boom
		})
	}()
	<-staged

	listed := make(chan []*domain.Withdrawal, 1)
	go func() {
		withdrawals, _, _ := s.GetWithdrawals(ctx, domain.WithdrawalFilter{})
		listed <- withdrawals
	}()

	select {
	case <-listed:
		t.Fatal("list returned while a unit of work was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.ErrorIs(t, <-done, boom)
	assert.Empty(t, <-listed)

	shop, err := s.GetShopByID(ctx, "shop-1")
	require.NoError(t, err)
	assert.True(t, shop.AvailableBalance.Equal(decimal.NewFromInt(500)))
}
