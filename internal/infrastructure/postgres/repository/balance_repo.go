package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultBalanceRepository struct {
	db *gorm.DB
}

func NewDefaultBalanceRepository(db *gorm.DB) *DefaultBalanceRepository {
	return &DefaultBalanceRepository{db: db}
}

// Debit is a conditional decrement: the row only changes when the balance
// covers the amount, so concurrent debits cannot overdraw it.
func (r *DefaultBalanceRepository) Debit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !postgres.ValidShopID(shopID) {
		return decimal.Zero, domain.ErrShopNotFound
	}
	conn := postgres.Conn(ctx, r.db)
	res := conn.Model(&models.ShopModel{}).
		Where("id = ? AND available_balance >= ?", shopID, amount).
		UpdateColumn("available_balance", gorm.Expr("available_balance - ?", amount))
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to debit shop %s: %w", shopID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.balance(conn, shopID); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, domain.ErrInsufficientBalance
	}
	return r.balance(conn, shopID)
}

func (r *DefaultBalanceRepository) Credit(ctx context.Context, shopID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !postgres.ValidShopID(shopID) {
		return decimal.Zero, domain.ErrShopNotFound
	}
	conn := postgres.Conn(ctx, r.db)
	res := conn.Model(&models.ShopModel{}).
		Where("id = ?", shopID).
		UpdateColumn("available_balance", gorm.Expr("available_balance + ?", amount))
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to credit shop %s: %w", shopID, res.Error)
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, domain.ErrShopNotFound
	}
	return r.balance(conn, shopID)
}

func (r *DefaultBalanceRepository) AppendTransaction(ctx context.Context, shopID string, tx domain.Transaction) (bool, error) {
	if !postgres.ValidShopID(shopID) {
		return false, domain.ErrShopNotFound
	}
	model := mappers.ToGORMTransaction(shopID, tx)
	res := postgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "withdrawal_id"}, {Name: "status"}},
			DoNothing: true,
		}).
		Create(model)
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return false, domain.ErrShopNotFound
		}
		return false, fmt.Errorf("failed to append transaction: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DefaultBalanceRepository) balance(conn *gorm.DB, shopID string) (decimal.Decimal, error) {
	var model models.ShopModel
	err := conn.Select("id", "available_balance").Where("id = ?", shopID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, domain.ErrShopNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	return model.AvailableBalance, nil
}
