package mappers

import (
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/models"
)

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:     model.ID,
		ShopID: model.ShopID,
		Seller: domain.SellerSnapshot{
			ShopID:   model.ShopID,
			ShopName: model.SellerShopName,
			Email:    model.SellerEmail,
		},
		Amount:    model.Amount,
		Status:    domain.WithdrawalStatus(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMWithdrawal(withdrawal *domain.Withdrawal) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:             withdrawal.ID,
		ShopID:         withdrawal.ShopID,
		SellerShopName: withdrawal.Seller.ShopName,
		SellerEmail:    withdrawal.Seller.Email,
		Amount:         withdrawal.Amount,
		Status:         string(withdrawal.Status),
		CreatedAt:      withdrawal.CreatedAt,
		UpdatedAt:      withdrawal.UpdatedAt,
	}
}
