package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/postgres/models"
)

func ToDomainShop(model *models.ShopModel) (*domain.Shop, error) {
	method, err := ToDomainWithdrawMethod(model.WithdrawMethod)
	if err != nil {
		return nil, fmt.Errorf("shop %s: %w", model.ID, err)
	}
	return &domain.Shop{
		ID:               model.ID,
		Name:             model.Name,
		Email:            model.Email,
		AvailableBalance: model.AvailableBalance,
		WithdrawMethod:   method,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}, nil
}

func ToGORMShop(shop *domain.Shop) (*models.ShopModel, error) {
	method, err := ToGORMWithdrawMethod(shop.WithdrawMethod)
	if err != nil {
		return nil, err
	}
	return &models.ShopModel{
		ID:               shop.ID,
		Name:             shop.Name,
		Email:            shop.Email,
		AvailableBalance: shop.AvailableBalance,
		WithdrawMethod:   method,
		CreatedAt:        shop.CreatedAt,
		UpdatedAt:        shop.UpdatedAt,
	}, nil
}

func ToDomainWithdrawMethod(raw []byte) (*domain.WithdrawMethod, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m models.WithdrawMethodModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode withdraw method: %w", err)
	}
	return &domain.WithdrawMethod{
		Type:              m.Type,
		BankName:          m.BankName,
		BankCountry:       m.BankCountry,
		BankSwiftCode:     m.BankSwiftCode,
		AccountHolderName: m.AccountHolderName,
		AccountNumber:     m.AccountNumber,
		BankAddress:       m.BankAddress,
	}, nil
}

func ToGORMWithdrawMethod(method *domain.WithdrawMethod) ([]byte, error) {
	if method == nil {
		return nil, nil
	}
	raw, err := json.Marshal(models.WithdrawMethodModel{
		Type:              method.Type,
		BankName:          method.BankName,
		BankCountry:       method.BankCountry,
		BankSwiftCode:     method.BankSwiftCode,
		AccountHolderName: method.AccountHolderName,
		AccountNumber:     method.AccountNumber,
		BankAddress:       method.BankAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode withdraw method: %w", err)
	}
	return raw, nil
}

func ToDomainTransaction(model *models.ShopTransactionModel) domain.Transaction {
	return domain.Transaction{
		WithdrawalID: model.WithdrawalID,
		Amount:       model.Amount,
		Status:       domain.WithdrawalStatus(model.Status),
		UpdatedAt:    model.StatusUpdatedAt,
	}
}

func ToGORMTransaction(shopID string, tx domain.Transaction) *models.ShopTransactionModel {
	return &models.ShopTransactionModel{
		ShopID:          shopID,
		WithdrawalID:    tx.WithdrawalID,
		Status:          string(tx.Status),
		Amount:          tx.Amount,
		StatusUpdatedAt: tx.UpdatedAt,
	}
}
