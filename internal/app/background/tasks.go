package background

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/usecase/withdrawal"
	"go.uber.org/zap"
)

type BackgroundTasks struct {
	WithdrawalUsecase withdrawal.WithdrawalUsecase
	ReconcileInterval time.Duration
	logger            *zap.Logger
}

func NewBackgroundTasks(withdrawalUC withdrawal.WithdrawalUsecase, reconcileInterval time.Duration, logger *zap.Logger) *BackgroundTasks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackgroundTasks{
		WithdrawalUsecase: withdrawalUC,
		ReconcileInterval: reconcileInterval,
		logger:            logger.Named("background"),
	}
}

// Run blocks until ctx is done.
func (bt *BackgroundTasks) Run(ctx context.Context) error {
	bt.startReconciler(ctx)
	return nil
}

func (bt *BackgroundTasks) startReconciler(ctx context.Context) {
	if bt.ReconcileInterval <= 0 {
		bt.logger.Info("history reconciler disabled")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(bt.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bt.WithdrawalUsecase.ReconcileTransactions(ctx); err != nil {
				bt.logger.Error("history reconcile failed", zap.Error(err))
			}
		}
	}
}
