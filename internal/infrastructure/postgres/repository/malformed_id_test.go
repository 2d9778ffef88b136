package repository_test

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed shop ids are answered without a round trip, so a nil db is enough.
func TestMalformedShopID_IsNotFound(t *testing.T) {
	ctx := context.Background()
	shops := repository.NewDefaultShopRepository(nil)
	balances := repository.NewDefaultBalanceRepository(nil)

	for _, id := range []string{"shop-1", "abc", "", "urn:uuid:4f1c2a3e-8b9d-4c7a-9e21-0d5b6f7a8c90"} {
		t.Run(id, func(t *testing.T) {
			_, err := shops.GetShopByID(ctx, id)
			assert.ErrorIs(t, err, domain.ErrShopNotFound)

			_, err = shops.GetShopTransactions(ctx, id)
			assert.ErrorIs(t, err, domain.ErrShopNotFound)

			assert.ErrorIs(t, shops.UpdateWithdrawMethod(ctx, id, nil), domain.ErrShopNotFound)
			assert.ErrorIs(t, shops.DeleteShop(ctx, id), domain.ErrShopNotFound)

			_, err = balances.Debit(ctx, id, decimal.NewFromInt(1))
			assert.ErrorIs(t, err, domain.ErrShopNotFound)

			_, err = balances.Credit(ctx, id, decimal.NewFromInt(1))
			assert.ErrorIs(t, err, domain.ErrShopNotFound)

			_, err = balances.AppendTransaction(ctx, id, domain.Transaction{WithdrawalID: "wd-1", Status: domain.WithdrawalSucceed})
			assert.ErrorIs(t, err, domain.ErrShopNotFound)
		})
	}
}

func TestGetWithdrawals_MalformedShopFilterIsEmpty(t *testing.T) {
	shopID := "shop-1"
	withdrawals, total, err := repository.NewDefaultWithdrawalRepository(nil).
		GetWithdrawals(context.Background(), domain.WithdrawalFilter{ShopID: &shopID})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, withdrawals)
}
