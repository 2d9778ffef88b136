package withdrawaldto

import (
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/dto"
	"github.com/shopspring/decimal"
)

type RequestWithdrawalOutput struct {
	Withdrawal *domain.Withdrawal
	Balance    decimal.Decimal
	// Warnings lists side effects that failed without affecting the request.
	Warnings []string
}

type ListWithdrawalsOutput struct {
	Withdrawals []*domain.Withdrawal
	Pagination  dto.Pagination
}
