package shop

import (
	"context"
	"strings"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/dto"
	shopdto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/shop"
	"go.uber.org/zap"
)

type ShopUsecase interface {
	GetOwnShop(ctx context.Context, actor domain.Actor) (*domain.Shop, error)
	GetShopInfo(ctx context.Context, shopID string) (*shopdto.ShopInfo, error)
	ListShops(ctx context.Context, actor domain.Actor, page, limit int) (*shopdto.ListShopsOutput, error)
	DeleteShop(ctx context.Context, actor domain.Actor, shopID string) error
	UpdateWithdrawMethod(ctx context.Context, actor domain.Actor, input shopdto.UpdateWithdrawMethodInput) (*domain.Shop, error)
	DeleteWithdrawMethod(ctx context.Context, actor domain.Actor) (*domain.Shop, error)
	GetTransactions(ctx context.Context, actor domain.Actor, shopID string) ([]domain.Transaction, error)
}

type DefaultShopUsecase struct {
	shopRepo   domain.ShopRepository
	transactor domain.Transactor
	logger     *zap.Logger
}

func NewDefaultShopUsecase(shopRepo domain.ShopRepository, transactor domain.Transactor, logger *zap.Logger) *DefaultShopUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultShopUsecase{
		shopRepo:   shopRepo,
		transactor: transactor,
		logger:     logger.Named("shops"),
	}
}

func sellerShop(actor domain.Actor) (string, error) {
	if !actor.Can(domain.CapabilitySeller) || actor.ShopID == "" {
		return "", domain.NewAuthorizationError("seller access required")
	}
	return actor.ShopID, nil
}

func (uc *DefaultShopUsecase) GetOwnShop(ctx context.Context, actor domain.Actor) (*domain.Shop, error) {
	shopID, err := sellerShop(actor)
	if err != nil {
		return nil, err
	}
	return uc.shopRepo.GetShopByID(ctx, shopID)
}

// GetShopInfo needs no actor.
func (uc *DefaultShopUsecase) GetShopInfo(ctx context.Context, shopID string) (*shopdto.ShopInfo, error) {
	shop, err := uc.shopRepo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &shopdto.ShopInfo{ID: shop.ID, Name: shop.Name, CreatedAt: shop.CreatedAt}, nil
}

func (uc *DefaultShopUsecase) ListShops(ctx context.Context, actor domain.Actor, page, limit int) (*shopdto.ListShopsOutput, error) {
	if !actor.Can(domain.CapabilityAdmin) {
		return nil, domain.NewAuthorizationError("admin access required")
	}
	if page < 0 || limit < 0 {
		return nil, domain.NewValidationError("page and limit must not be negative")
	}
	if page == 0 {
		page = 1
	}

	shops, total, err := uc.shopRepo.GetShops(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &shopdto.ListShopsOutput{
		Shops:      shops,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// DeleteShop soft-deletes the shop. Its withdrawals and history stay.
func (uc *DefaultShopUsecase) DeleteShop(ctx context.Context, actor domain.Actor, shopID string) error {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.NewAuthorizationError("admin access required")
	}
	err := uc.transactor.WithinShopLock(ctx, shopID, func(ctx context.Context) error {
		return uc.shopRepo.DeleteShop(ctx, shopID)
	})
	if err != nil {
		return err
	}
	uc.logger.Info("shop deleted", zap.String("shop_id", shopID), zap.String("admin_id", actor.UserID))
	return nil
}

func validateWithdrawMethod(m *domain.WithdrawMethod) error {
	var missing []string
	if m.Type == "" {
		missing = append(missing, "type")
	}
	if m.AccountHolderName == "" {
		missing = append(missing, "account_holder_name")
	}
	if m.AccountNumber == "" {
		missing = append(missing, "account_number")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("withdraw method is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func (uc *DefaultShopUsecase) UpdateWithdrawMethod(ctx context.Context, actor domain.Actor, input shopdto.UpdateWithdrawMethodInput) (*domain.Shop, error) {
	shopID, err := sellerShop(actor)
	if err != nil {
		return nil, err
	}

	method := &domain.WithdrawMethod{
		Type:              strings.TrimSpace(input.Type),
		BankName:          strings.TrimSpace(input.BankName),
		BankCountry:       strings.TrimSpace(input.BankCountry),
		BankSwiftCode:     strings.TrimSpace(input.BankSwiftCode),
		AccountHolderName: strings.TrimSpace(input.AccountHolderName),
		AccountNumber:     strings.TrimSpace(input.AccountNumber),
		BankAddress:       strings.TrimSpace(input.BankAddress),
	}
	if err := validateWithdrawMethod(method); err != nil {
		return nil, err
	}

	return uc.setWithdrawMethod(ctx, shopID, method)
}

func (uc *DefaultShopUsecase) DeleteWithdrawMethod(ctx context.Context, actor domain.Actor) (*domain.Shop, error) {
	shopID, err := sellerShop(actor)
	if err != nil {
		return nil, err
	}
	return uc.setWithdrawMethod(ctx, shopID, nil)
}

func (uc *DefaultShopUsecase) setWithdrawMethod(ctx context.Context, shopID string, method *domain.WithdrawMethod) (*domain.Shop, error) {
	var shop *domain.Shop
	err := uc.transactor.WithinShopLock(ctx, shopID, func(ctx context.Context) error {
		if err := uc.shopRepo.UpdateWithdrawMethod(ctx, shopID, method); err != nil {
			return err
		}
		var err error
		shop, err = uc.shopRepo.GetShopByID(ctx, shopID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("withdraw method updated", zap.String("shop_id", shopID), zap.Bool("removed", method == nil))
	return shop, nil
}

// GetTransactions returns the shop history oldest first. Sellers only see
// their own shop.
func (uc *DefaultShopUsecase) GetTransactions(ctx context.Context, actor domain.Actor, shopID string) ([]domain.Transaction, error) {
	if !actor.Can(domain.CapabilityAdmin) && !actor.IsSellerOf(shopID) {
		return nil, domain.NewAuthorizationError("not allowed to read this shop's transactions")
	}
	if _, err := uc.shopRepo.GetShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	return uc.shopRepo.GetShopTransactions(ctx, shopID)
}

var _ ShopUsecase = (*DefaultShopUsecase)(nil)
