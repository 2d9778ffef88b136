package setup

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-payout-service/internal/config"
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() *config.PayoutConfig {
	cfg := &config.PayoutConfig{}
	cfg.PayoutDB.Driver = "memory"
	cfg.PayoutDB.SeedShops = []config.SeedShop{{ID: "shop-1", Name: "Acme", Email: "acme@example.com", Balance: "500"}}
	cfg.Auth.JWTSecret = "secret"
	return cfg
}

func TestMemoryWiring(t *testing.T) {
	ctx := context.Background()
	deps, err := InitializeDependencies(ctx, memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer deps.Close()

	assert.Nil(t, deps.DB)
	assert.Nil(t, deps.Publisher)
	assert.NoError(t, deps.Ready(ctx))

	ucs, err := InitializeUseCases(deps)
	require.NoError(t, err)

	seller := domain.Actor{UserID: "u", ShopID: "shop-1", Capabilities: []domain.Capability{domain.CapabilitySeller}}
	out, err := ucs.WithdrawalUsecase.RequestWithdrawal(ctx, seller, withdrawaldto.RequestWithdrawalInput{Amount: decimal.NewFromInt(200)})
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(300)))
	assert.Empty(t, out.Warnings)

	shop, err := ucs.ShopUsecase.GetOwnShop(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, "Acme", shop.Name)
}

func TestSeedRejectsBadBalance(t *testing.T) {
	cfg := memoryConfig()
	cfg.PayoutDB.SeedShops[0].Balance = "lots"

	_, err := InitializeDependencies(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
