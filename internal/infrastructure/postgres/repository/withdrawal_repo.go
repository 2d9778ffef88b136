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

var withdrawalSortColumns = map[string]string{
	"created_at": "withdrawals.created_at",
	"updated_at": "withdrawals.updated_at",
	"amount":     "withdrawals.amount",
}

type DefaultWithdrawalRepository struct {
	db *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{db: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	model := mappers.ToGORMWithdrawal(withdrawal)
	if err := postgres.Conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	var model models.WithdrawalModel
	err := postgres.Conn(ctx, r.db).Where("id = ?", withdrawalID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", withdrawalID, err)
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]*domain.Withdrawal, int64, error) {
	// no request can belong to a shop id that is not a UUID
	if filter.ShopID != nil && !postgres.ValidShopID(*filter.ShopID) {
		return []*domain.Withdrawal{}, 0, nil
	}

	query := postgres.Conn(ctx, r.db).Model(&models.WithdrawalModel{})

	if filter.ShopID != nil {
		query = query.Where("withdrawals.shop_id = ?", *filter.ShopID)
	}
	if filter.Status != nil {
		query = query.Where("withdrawals.status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	column, ok := withdrawalSortColumns[filter.SortBy]
	if !ok {
		column = withdrawalSortColumns["created_at"]
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction).Order("withdrawals.id " + direction)

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var withdrawalModels []models.WithdrawalModel
	if err := query.Find(&withdrawalModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find withdrawals: %w", err)
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModels[i])
	}
	return withdrawals, total, nil
}

func (r *DefaultWithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	res := postgres.Conn(ctx, r.db).Model(&models.WithdrawalModel{}).
		Where("id = ?", withdrawalID).
		UpdateColumns(map[string]interface{}{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update withdrawal status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrWithdrawalNotFound
	}
	return nil
}

func (r *DefaultWithdrawalRepository) FindUnrecordedWithdrawals(ctx context.Context, limit int) ([]*domain.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	err := postgres.Conn(ctx, r.db).Model(&models.WithdrawalModel{}).
		Select("withdrawals.*").
		Joins("JOIN shops ON shops.id = withdrawals.shop_id AND shops.deleted_at IS NULL").
		Joins("LEFT JOIN shop_transactions ON shop_transactions.withdrawal_id = withdrawals.id AND shop_transactions.status = withdrawals.status").
		Where("withdrawals.status <> ?", string(domain.WithdrawalProcessing)).
		Where("shop_transactions.id IS NULL").
		Order("withdrawals.updated_at ASC").
		Limit(limit).
		Find(&withdrawalModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unrecorded withdrawals: %w", err)
	}

	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModels[i])
	}
	return withdrawals, nil
}
