package withdrawal

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransitionWithdrawal moves a Processing request to Succeed or Rejected and
// appends the history snapshot in the same unit of work. Repeating the
// current status changes nothing but re-attempts the append and the e-mail.
//
// A notification failure is returned as a NotificationError together with
// the committed request.
func (uc *DefaultWithdrawalUsecase) TransitionWithdrawal(ctx context.Context, actor domain.Actor, withdrawalID string, status domain.WithdrawalStatus) (*domain.Withdrawal, error) {
	defer uc.observe("transition", time.Now())

	if !actor.Can(domain.CapabilityAdmin) {
		return nil, domain.NewAuthorizationError("admin access required")
	}
	if !status.IsTerminal() {
		return nil, domain.NewValidationError("status must be one of %s, %s", domain.WithdrawalSucceed, domain.WithdrawalRejected)
	}

	current, err := uc.withdrawalRepo.GetWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	var (
		updated *domain.Withdrawal
		shop    *domain.Shop
		changed bool
		balance *decimal.Decimal
	)
	err = uc.transactor.WithinShopLock(ctx, current.ShopID, func(ctx context.Context) error {
		w, err := uc.withdrawalRepo.GetWithdrawalByID(ctx, withdrawalID)
		if err != nil {
			return err
		}
		shop, err = uc.shopRepo.GetShopByID(ctx, w.ShopID)
		if err != nil {
			return err
		}

		if w.Status == status {
			updated = w
			_, err := uc.balanceRepo.AppendTransaction(ctx, w.ShopID, w.Snapshot())
			return err
		}
		if w.Status.IsTerminal() {
			return domain.NewValidationError("withdrawal request is already %s", w.Status)
		}

		at := uc.now()
		if at.Before(w.UpdatedAt) {
			at = w.UpdatedAt
		}
		if err := uc.withdrawalRepo.UpdateWithdrawalStatus(ctx, w.ID, status, at); err != nil {
			return err
		}
		w.Status, w.UpdatedAt = status, at

		if _, err := uc.balanceRepo.AppendTransaction(ctx, w.ShopID, w.Snapshot()); err != nil {
			return err
		}

		if status == domain.WithdrawalRejected && uc.opts.RefundOnReject {
			b, err := uc.balanceRepo.Credit(ctx, w.ShopID, w.Amount)
			if err != nil {
				return err
			}
			balance = &b
		}

		updated, changed = w, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.recordTransitioned(updated)
		uc.logger.Info("withdrawal transitioned",
			zap.String("withdrawal_id", updated.ID),
			zap.String("shop_id", updated.ShopID),
			zap.String("status", string(updated.Status)),
			zap.String("admin_id", actor.UserID),
			zap.Bool("refunded", balance != nil))
		uc.publish(ctx, domain.WithdrawalEvent{
			Type:         domain.WithdrawalTransitioned,
			WithdrawalID: updated.ID,
			ShopID:       updated.ShopID,
			Amount:       updated.Amount,
			Status:       updated.Status,
			Balance:      balance,
			OccurredAt:   updated.UpdatedAt,
		})
	}

	if err := uc.notify(ctx, shop.Email, transitionMail(shop.Name, updated)); err != nil {
		uc.logger.Error("failed to notify seller about withdrawal status",
			zap.String("withdrawal_id", updated.ID),
			zap.String("status", string(updated.Status)),
			zap.Error(err))
		uc.recordNotificationFailure("transitioned")
		return updated, domain.NewNotificationError(err)
	}

	return updated, nil
}
