package withdrawaldto

import (
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RequestWithdrawalInput struct {
	Amount decimal.Decimal
}

type ListWithdrawalsInput struct {
	ShopID    *string
	Status    *domain.WithdrawalStatus
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
