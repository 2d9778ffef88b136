package withdrawal

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
)

func (uc *DefaultWithdrawalUsecase) observe(operation string, start time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ObserveDuration(operation, start)
}

func (uc *DefaultWithdrawalUsecase) recordRequested(err error, amount decimal.Decimal) {
	if uc.Metrics == nil {
		return
	}
	result := "created"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		result = "rejected_validation"
	case errors.Is(err, domain.ErrInsufficientBalance):
		result = "insufficient_balance"
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	uc.Metrics.RecordRequested(result, amount)
}

func (uc *DefaultWithdrawalUsecase) recordTransitioned(w *domain.Withdrawal) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordTransitioned(string(w.Status), w.Amount)
}

func (uc *DefaultWithdrawalUsecase) recordNotificationFailure(stage string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordNotificationFailure(stage)
}

func (uc *DefaultWithdrawalUsecase) recordReconciled(n int) {
	if uc.Metrics == nil || n == 0 {
		return
	}
	uc.Metrics.RecordReconciled(n)
}
