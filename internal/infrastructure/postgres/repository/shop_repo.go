package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultShopRepository struct {
	db *gorm.DB
}

func NewDefaultShopRepository(db *gorm.DB) *DefaultShopRepository {
	return &DefaultShopRepository{db: db}
}

// CreateShop is used by settlement tooling and tests; the payout flows never create shops.
func (r *DefaultShopRepository) CreateShop(ctx context.Context, shop *domain.Shop) error {
	model, err := mappers.ToGORMShop(shop)
	if err != nil {
		return err
	}
	return postgres.Conn(ctx, r.db).Create(model).Error
}

func (r *DefaultShopRepository) GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	if !postgres.ValidShopID(shopID) {
		return nil, domain.ErrShopNotFound
	}

	var model models.ShopModel
	err := postgres.Conn(ctx, r.db).Where("id = ?", shopID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop %s: %w", shopID, err)
	}
	return mappers.ToDomainShop(&model)
}

func (r *DefaultShopRepository) GetShops(ctx context.Context, page, limit int) ([]*domain.Shop, int64, error) {
	query := postgres.Conn(ctx, r.db).Model(&models.ShopModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var shopModels []models.ShopModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&shopModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find shops: %w", err)
	}

	shops := make([]*domain.Shop, 0, len(shopModels))
	for i := range shopModels {
		shop, err := mappers.ToDomainShop(&shopModels[i])
		if err != nil {
			return nil, 0, err
		}
		shops = append(shops, shop)
	}
	return shops, total, nil
}

func (r *DefaultShopRepository) UpdateWithdrawMethod(ctx context.Context, shopID string, method *domain.WithdrawMethod) error {
	if !postgres.ValidShopID(shopID) {
		return domain.ErrShopNotFound
	}

	var value interface{} = gorm.Expr("NULL")
	if method != nil {
		raw, err := mappers.ToGORMWithdrawMethod(method)
		if err != nil {
			return err
		}
		value = raw
	}

	res := postgres.Conn(ctx, r.db).Model(&models.ShopModel{}).
		Where("id = ?", shopID).
		UpdateColumns(map[string]interface{}{
			"withdraw_method": value,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update withdraw method: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

func (r *DefaultShopRepository) GetShopTransactions(ctx context.Context, shopID string) ([]domain.Transaction, error) {
	if !postgres.ValidShopID(shopID) {
		return nil, domain.ErrShopNotFound
	}

	var txModels []models.ShopTransactionModel
	if err := postgres.Conn(ctx, r.db).
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get shop transactions: %w", err)
	}

	txs := make([]domain.Transaction, len(txModels))
	for i := range txModels {
		txs[i] = mappers.ToDomainTransaction(&txModels[i])
	}
	return txs, nil
}

// DeleteShop soft-deletes the shop; its history and withdrawals stay.
func (r *DefaultShopRepository) DeleteShop(ctx context.Context, shopID string) error {
	if !postgres.ValidShopID(shopID) {
		return domain.ErrShopNotFound
	}

	res := postgres.Conn(ctx, r.db).Delete(&models.ShopModel{}, "id = ?", shopID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete shop: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}
