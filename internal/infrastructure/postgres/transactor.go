package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// Conn returns the transaction bound to ctx, or db scoped to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinShopLock opens a transaction and takes the shop row lock before
// running fn. A nested call reuses the outer transaction.
func (t *GormTransactor) WithinShopLock(ctx context.Context, shopID string, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	if !ValidShopID(shopID) {
		return domain.ErrShopNotFound
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shop models.ShopModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&shop, "id = ?", shopID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShopNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock shop %s: %w", shopID, err)
		}
		return fn(withTx(ctx, tx))
	})
}
