package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShopModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	Name             string          `gorm:"not null"`
	Email            string          `gorm:"not null"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	WithdrawMethod   []byte          `gorm:"type:jsonb"`
	CreatedAt        time.Time       `gorm:"index:idx_shops_created_at,sort:desc"`
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ShopModel) TableName() string {
	return "shops"
}

// WithdrawMethodModel is the JSON document kept in shops.withdraw_method.
type WithdrawMethodModel struct {
	Type              string `json:"type"`
	BankName          string `json:"bank_name,omitempty"`
	BankCountry       string `json:"bank_country,omitempty"`
	BankSwiftCode     string `json:"bank_swift_code,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	BankAddress       string `json:"bank_address,omitempty"`
}
