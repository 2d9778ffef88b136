package publisher

import (
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
)

type WithdrawalEventMessage struct {
	EventType    string           `json:"event_type"`
	WithdrawalID string           `json:"withdrawal_id"`
	ShopID       string           `json:"shop_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Status       string           `json:"status"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

func NewWithdrawalEventMessage(event domain.WithdrawalEvent) WithdrawalEventMessage {
	return WithdrawalEventMessage{
		EventType:    string(event.Type),
		WithdrawalID: event.WithdrawalID,
		ShopID:       event.ShopID,
		Amount:       event.Amount,
		Status:       string(event.Status),
		Balance:      event.Balance,
		OccurredAt:   event.OccurredAt,
	}
}
