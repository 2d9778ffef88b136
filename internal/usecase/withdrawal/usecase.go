package withdrawal

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/metrics"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	nanoid "github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

type WithdrawalUsecase interface {
	RequestWithdrawal(ctx context.Context, actor domain.Actor, input withdrawaldto.RequestWithdrawalInput) (*withdrawaldto.RequestWithdrawalOutput, error)
	TransitionWithdrawal(ctx context.Context, actor domain.Actor, withdrawalID string, status domain.WithdrawalStatus) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, actor domain.Actor, input withdrawaldto.ListWithdrawalsInput) (*withdrawaldto.ListWithdrawalsOutput, error)
	GetWithdrawal(ctx context.Context, actor domain.Actor, withdrawalID string) (*domain.Withdrawal, error)
	ReconcileTransactions(ctx context.Context) (int, error)
}

type Options struct {
	// NotifyTimeout bounds every seller e-mail; zero disables the bound.
	NotifyTimeout time.Duration
	// RefundOnReject credits the amount back when a request is rejected.
	RefundOnReject bool
	ReconcileBatch int
}

type DefaultWithdrawalUsecase struct {
	withdrawalRepo domain.WithdrawalRepository
	shopRepo       domain.ShopRepository
	balanceRepo    domain.BalanceRepository
	transactor     domain.Transactor
	mailer         domain.Mailer
	publisher      domain.WithdrawalEventPublisher
	Metrics        *metrics.WithdrawalMetrics
	logger         *zap.Logger
	opts           Options

	newID func() string
	now   func() time.Time
}

// NewDefaultWithdrawalUsecase wires the workflow. publisher and withdrawalMetrics may be nil.
func NewDefaultWithdrawalUsecase(
	withdrawalRepo domain.WithdrawalRepository,
	shopRepo domain.ShopRepository,
	balanceRepo domain.BalanceRepository,
	transactor domain.Transactor,
	mailer domain.Mailer,
	publisher domain.WithdrawalEventPublisher,
	withdrawalMetrics *metrics.WithdrawalMetrics,
	logger *zap.Logger,
	opts Options,
) (*DefaultWithdrawalUsecase, error) {
	newID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to init id generator: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ReconcileBatch <= 0 {
		opts.ReconcileBatch = 100
	}

	return &DefaultWithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		shopRepo:       shopRepo,
		balanceRepo:    balanceRepo,
		transactor:     transactor,
		mailer:         mailer,
		publisher:      publisher,
		Metrics:        withdrawalMetrics,
		logger:         logger.Named("withdrawals"),
		opts:           opts,
		newID:          newID,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

var _ WithdrawalUsecase = (*DefaultWithdrawalUsecase)(nil)
