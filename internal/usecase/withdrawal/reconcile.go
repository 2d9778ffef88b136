package withdrawal

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReconcileTransactions appends the missing history entry of finalized
// requests. Only the append is retried; statuses are left as they are.
func (uc *DefaultWithdrawalUsecase) ReconcileTransactions(ctx context.Context) (int, error) {
	defer uc.observe("reconcile", time.Now())

	pending, err := uc.withdrawalRepo.FindUnrecordedWithdrawals(ctx, uc.opts.ReconcileBatch)
	if err != nil {
		return 0, err
	}

	appended := 0
	for _, w := range pending {
		var ok bool
		err := uc.transactor.WithinShopLock(ctx, w.ShopID, func(ctx context.Context) error {
			var err error
			ok, err = uc.balanceRepo.AppendTransaction(ctx, w.ShopID, w.Snapshot())
			return err
		})
		if err != nil {
			uc.logger.Warn("failed to reconcile withdrawal history",
				zap.String("withdrawal_id", w.ID),
				zap.String("shop_id", w.ShopID),
				zap.Error(err))
			continue
		}
		if ok {
			appended++
		}
	}

	uc.recordReconciled(appended)
	if appended > 0 {
		uc.logger.Info("withdrawal history reconciled", zap.Int("appended", appended))
	}
	return appended, nil
}
