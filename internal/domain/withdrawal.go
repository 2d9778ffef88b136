package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalProcessing WithdrawalStatus = "Processing"
	WithdrawalSucceed    WithdrawalStatus = "Succeed"
	WithdrawalRejected   WithdrawalStatus = "Rejected"
)

func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalSucceed || s == WithdrawalRejected
}

func ParseWithdrawalStatus(s string) (WithdrawalStatus, bool) {
	switch WithdrawalStatus(s) {
	case WithdrawalProcessing, WithdrawalSucceed, WithdrawalRejected:
		return WithdrawalStatus(s), true
	}
	return "", false
}

// SellerSnapshot is copied from the shop when the request is created and
// never refreshed.
type SellerSnapshot struct {
	ShopID   string
	ShopName string
	Email    string
}

type Withdrawal struct {
	ID        string
	ShopID    string
	Seller    SellerSnapshot
	Amount    decimal.Decimal
	Status    WithdrawalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WithdrawalFilter struct {
	ShopID    *string
	Status    *WithdrawalStatus
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	GetWithdrawalByID(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	GetWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]*Withdrawal, int64, error)
	UpdateWithdrawalStatus(ctx context.Context, withdrawalID string, status WithdrawalStatus, updatedAt time.Time) error
	// FindUnrecordedWithdrawals returns finalized requests whose current
	// status has no matching entry in the shop history.
	FindUnrecordedWithdrawals(ctx context.Context, limit int) ([]*Withdrawal, error)
}

// Snapshot builds the history entry for the current state of w.
func (w *Withdrawal) Snapshot() Transaction {
	return Transaction{
		WithdrawalID: w.ID,
		Amount:       w.Amount,
		Status:       w.Status,
		UpdatedAt:    w.UpdatedAt,
	}
}
