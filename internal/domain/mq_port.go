package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, msgs ...Message) error
}

type WithdrawalEventType string

const (
	WithdrawalCreated      WithdrawalEventType = "withdrawal.created"
	WithdrawalTransitioned WithdrawalEventType = "withdrawal.transitioned"
)

type WithdrawalEvent struct {
	Type         WithdrawalEventType
	WithdrawalID string
	ShopID       string
	Amount       decimal.Decimal
	Status       WithdrawalStatus
	Balance      *decimal.Decimal
	OccurredAt   time.Time
}

type WithdrawalEventPublisher interface {
	PublishWithdrawal(ctx context.Context, event WithdrawalEvent) error
}

// Mailer delivers a single e-mail to a seller.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
