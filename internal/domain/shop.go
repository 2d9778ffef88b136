package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Shop struct {
	ID               string
	Name             string
	Email            string
	AvailableBalance decimal.Decimal
	WithdrawMethod   *WithdrawMethod
	Transactions     []Transaction
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type WithdrawMethod struct {
	Type              string
	BankName          string
	BankCountry       string
	BankSwiftCode     string
	AccountHolderName string
	AccountNumber     string
	BankAddress       string
}

// Transaction is the history snapshot of one withdrawal outcome.
type Transaction struct {
	WithdrawalID string
	Amount       decimal.Decimal
	Status       WithdrawalStatus
	UpdatedAt    time.Time
}

type ShopRepository interface {
	GetShopByID(ctx context.Context, shopID string) (*Shop, error)
	GetShops(ctx context.Context, page, limit int) ([]*Shop, int64, error)
	UpdateWithdrawMethod(ctx context.Context, shopID string, method *WithdrawMethod) error
	GetShopTransactions(ctx context.Context, shopID string) ([]Transaction, error)
	DeleteShop(ctx context.Context, shopID string) error
}

// BalanceRepository owns every write to a shop's balance and history.
type BalanceRepository interface {
	// Debit subtracts amount in one atomic step and returns the new balance.
	// The balance never drops below zero: ErrInsufficientBalance is returned instead.
	Debit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error)
	// AppendTransaction records tx once per (withdrawal, status); it reports
	// false when the entry was already there.
	AppendTransaction(ctx context.Context, shopID string, tx Transaction) (bool, error)
}

// Transactor runs fn as one unit of work with the shop serialized against
// concurrent units. Repositories called with the ctx passed to fn join it.
type Transactor interface {
	WithinShopLock(ctx context.Context, shopID string, fn func(ctx context.Context) error) error
}
