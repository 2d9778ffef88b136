package request

import "github.com/shopspring/decimal"

// CreateWithdrawalRequest accepts the amount as a JSON number or string.
type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
