package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopTransactionModel is one append-only history row. The serial id
// preserves append order.
type ShopTransactionModel struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	ShopID          string          `gorm:"type:uuid;not null;index"`
	WithdrawalID    string          `gorm:"size:32;not null;uniqueIndex:uq_shop_transactions_withdrawal_status,priority:1"`
	Status          string          `gorm:"size:16;not null;uniqueIndex:uq_shop_transactions_withdrawal_status,priority:2"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	StatusUpdatedAt time.Time       `gorm:"not null"`
}

func (ShopTransactionModel) TableName() string {
	return "shop_transactions"
}
