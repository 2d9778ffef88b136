package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/config"
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	publisher "github.com/LavaJover/shvark-payout-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/repository"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PayoutConfig
	Logger       *zap.Logger
	DB           *gorm.DB
	Repositories *Repositories
	Mailer       domain.Mailer
	Publisher    *publisher.KafkaPublisher
	Registry     *prometheus.Registry
	Metrics      *metrics.WithdrawalMetrics
	HTTPMetrics  *metrics.HTTPMetrics
}

type Repositories struct {
	ShopRepo       domain.ShopRepository
	BalanceRepo    domain.BalanceRepository
	WithdrawalRepo domain.WithdrawalRepository
	Transactor     domain.Transactor
	// seed inserts a shop when it does not exist yet
	seed func(ctx context.Context, shop domain.Shop) error
}

func InitializeDependencies(ctx context.Context, cfg *config.PayoutConfig, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: logger}

	repos, db, err := initRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.DB, deps.Repositories = db, repos

	if err := seedShops(ctx, repos, cfg.PayoutDB.SeedShops, logger); err != nil {
		return nil, fmt.Errorf("seed shops: %w", err)
	}

	deps.Mailer = initMailer(cfg, logger)

	if cfg.KafkaService.Enabled {
		deps.Publisher, err = publisher.NewKafkaPublisher(publisher.KafkaConfig{
			Brokers:    cfg.KafkaService.Brokers,
			Topic:      cfg.KafkaService.Topic,
			Username:   cfg.KafkaService.Username,
			Password:   cfg.KafkaService.Password,
			Mechanism:  cfg.KafkaService.Mechanism,
			TLSEnabled: cfg.KafkaService.TLSEnabled,
			Async:      cfg.KafkaService.Async,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("withdrawal publisher: %w", err)
		}
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewWithdrawalMetrics(deps.Registry)
	deps.HTTPMetrics = metrics.NewHTTPMetrics(deps.Registry)

	return deps, nil
}

func initRepositories(cfg *config.PayoutConfig, logger *zap.Logger) (*Repositories, *gorm.DB, error) {
	if cfg.PayoutDB.Driver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Repositories{
			ShopRepo:       store,
			BalanceRepo:    store,
			WithdrawalRepo: store,
			Transactor:     store,
			seed: func(_ context.Context, shop domain.Shop) error {
				store.PutShop(shop)
				return nil
			},
		}, nil, nil
	}

	if !cfg.PayoutDB.SkipMigrations {
		if err := migrate.RunMigrations(cfg.PayoutDB.Dsn, logger); err != nil {
			return nil, nil, err
		}
	}
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	shopRepo := repository.NewDefaultShopRepository(db)
	return &Repositories{
		ShopRepo:       shopRepo,
		BalanceRepo:    repository.NewDefaultBalanceRepository(db),
		WithdrawalRepo: repository.NewDefaultWithdrawalRepository(db),
		Transactor:     postgres.NewGormTransactor(db),
		seed: func(ctx context.Context, shop domain.Shop) error {
			_, err := shopRepo.GetShopByID(ctx, shop.ID)
			if err == nil {
				return nil
			}
			if !errors.Is(err, domain.ErrShopNotFound) {
				return err
			}
			return shopRepo.CreateShop(ctx, &shop)
		},
	}, db, nil
}

func seedShops(ctx context.Context, repos *Repositories, seeds []config.SeedShop, logger *zap.Logger) error {
	for _, s := range seeds {
		balance := decimal.Zero
		if s.Balance != "" {
			var err error
			if balance, err = decimal.NewFromString(s.Balance); err != nil {
				return fmt.Errorf("shop %s: invalid balance %q: %w", s.ID, s.Balance, err)
			}
		}
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := repos.seed(ctx, domain.Shop{
			ID:               id,
			Name:             s.Name,
			Email:            s.Email,
			AvailableBalance: balance,
		}); err != nil {
			return err
		}
		logger.Info("shop seeded", zap.String("shop_id", id), zap.String("balance", balance.String()))
	}
	return nil
}

func initMailer(cfg *config.PayoutConfig, logger *zap.Logger) domain.Mailer {
	if !cfg.MailService.Enabled {
		return notifier.NewLogMailer(logger)
	}
	return notifier.NewHTTPMailer(
		cfg.MailService.BaseURL,
		cfg.MailService.APIKey,
		cfg.MailService.From,
		cfg.MailService.Timeout,
		logger,
	)
}

// Ready reports whether the storage is reachable.
func (d *Dependencies) Ready(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Dependencies) Close() {
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			d.Logger.Warn("failed to close kafka publisher", zap.Error(err))
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
