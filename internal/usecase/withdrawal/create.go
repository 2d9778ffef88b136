package withdrawal

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const notificationWarning = "withdrawal request was created but the confirmation e-mail could not be sent"

const (
	// amounts are stored as NUMERIC(20,2)
	maxIntegerDigits = 18
	// trailing zeros past this scale are not worth rescaling for
	maxInputScale = 20
)

// validateAmount only inspects digits and exponent until the amount is known
// to be small; rescaling a decimal costs time proportional to its exponent.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount must be a positive number")
	}
	exp := int64(amount.Exponent())
	if int64(amount.NumDigits())+exp > maxIntegerDigits {
		return domain.NewValidationError("amount must be below 10^%d", maxIntegerDigits)
	}
	if exp < -maxInputScale || !amount.Equal(amount.Round(2)) {
		return domain.NewValidationError("amount must have at most two decimal places")
	}
	return nil
}

// RequestWithdrawal creates a Processing request for the actor's shop and
// debits the amount in the same unit of work.
func (uc *DefaultWithdrawalUsecase) RequestWithdrawal(ctx context.Context, actor domain.Actor, input withdrawaldto.RequestWithdrawalInput) (*withdrawaldto.RequestWithdrawalOutput, error) {
	defer uc.observe("request", time.Now())

	if !actor.Can(domain.CapabilitySeller) || actor.ShopID == "" {
		return nil, domain.NewAuthorizationError("seller access required")
	}
	if err := validateAmount(input.Amount); err != nil {
		uc.recordRequested(err, input.Amount)
		return nil, err
	}

	var (
		withdrawal *domain.Withdrawal
		balance    decimal.Decimal
	)
	err := uc.transactor.WithinShopLock(ctx, actor.ShopID, func(ctx context.Context) error {
		shop, err := uc.shopRepo.GetShopByID(ctx, actor.ShopID)
		if err != nil {
			return err
		}

		now := uc.now()
		withdrawal = &domain.Withdrawal{
			ID:     uc.newID(),
			ShopID: shop.ID,
			Seller: domain.SellerSnapshot{
				ShopID:   shop.ID,
				ShopName: shop.Name,
				Email:    shop.Email,
			},
			Amount:    input.Amount,
			Status:    domain.WithdrawalProcessing,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.withdrawalRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
			return err
		}

		balance, err = uc.balanceRepo.Debit(ctx, shop.ID, input.Amount)
		return err
	})
	uc.recordRequested(err, input.Amount)
	if err != nil {
		uc.logger.Info("withdrawal request refused",
			zap.String("shop_id", actor.ShopID),
			zap.String("amount", input.Amount.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID),
		zap.String("shop_id", withdrawal.ShopID),
		zap.String("amount", withdrawal.Amount.String()),
		zap.String("balance", balance.String()))

	out := &withdrawaldto.RequestWithdrawalOutput{Withdrawal: withdrawal, Balance: balance}

	if err := uc.notify(ctx, withdrawal.Seller.Email, receivedMail(withdrawal)); err != nil {
		uc.logger.Warn("failed to notify seller about withdrawal request",
			zap.String("withdrawal_id", withdrawal.ID),
			zap.Error(err))
		uc.recordNotificationFailure("created")
		out.Warnings = append(out.Warnings, notificationWarning)
	}

	uc.publish(ctx, domain.WithdrawalEvent{
		Type:         domain.WithdrawalCreated,
		WithdrawalID: withdrawal.ID,
		ShopID:       withdrawal.ShopID,
		Amount:       withdrawal.Amount,
		Status:       withdrawal.Status,
		Balance:      &balance,
		OccurredAt:   withdrawal.CreatedAt,
	})

	return out, nil
}
