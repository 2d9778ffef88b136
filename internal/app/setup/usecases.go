package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/shop"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/withdrawal"
)

type UseCases struct {
	WithdrawalUsecase withdrawal.WithdrawalUsecase
	ShopUsecase       shop.ShopUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config
	repos := deps.Repositories

	// a nil *KafkaPublisher must not become a non-nil interface
	var eventPublisher domain.WithdrawalEventPublisher
	if deps.Publisher != nil {
		eventPublisher = deps.Publisher
	}

	withdrawalUsecase, err := withdrawal.NewDefaultWithdrawalUsecase(
		repos.WithdrawalRepo,
		repos.ShopRepo,
		repos.BalanceRepo,
		repos.Transactor,
		deps.Mailer,
		eventPublisher,
		deps.Metrics,
		deps.Logger,
		withdrawal.Options{
			NotifyTimeout:  cfg.Withdrawals.NotifyTimeout,
			RefundOnReject: cfg.Withdrawals.RefundOnReject,
			ReconcileBatch: cfg.Withdrawals.ReconcileBatch,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("withdrawal usecase: %w", err)
	}

	return &UseCases{
		WithdrawalUsecase: withdrawalUsecase,
		ShopUsecase:       shop.NewDefaultShopUsecase(repos.ShopRepo, repos.Transactor, deps.Logger),
	}, nil
}
