package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalModel keeps the seller snapshot inline; shop_id is not a foreign key.
type WithdrawalModel struct {
	ID             string          `gorm:"primaryKey;size:32"`
	ShopID         string          `gorm:"type:uuid;not null;index:idx_withdrawals_shop_created,priority:1"`
	SellerShopName string          `gorm:"not null"`
	SellerEmail    string          `gorm:"not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status         string          `gorm:"size:16;not null;index"`
	CreatedAt      time.Time       `gorm:"index:idx_withdrawals_shop_created,priority:2,sort:desc"`
	UpdatedAt      time.Time
}

func (WithdrawalModel) TableName() string {
	return "withdrawals"
}
