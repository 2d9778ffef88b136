package withdrawal

import (
	"context"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/dto"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
)

var sortFields = map[string]bool{"": true, "created_at": true, "updated_at": true, "amount": true}

// ListWithdrawals returns requests newest first unless another order is
// asked for. Sellers only ever see their own shop.
func (uc *DefaultWithdrawalUsecase) ListWithdrawals(ctx context.Context, actor domain.Actor, input withdrawaldto.ListWithdrawalsInput) (*withdrawaldto.ListWithdrawalsOutput, error) {
	filter := domain.WithdrawalFilter{
		ShopID:    input.ShopID,
		Status:    input.Status,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Page:      input.Page,
		Limit:     input.Limit,
	}

	switch {
	case actor.Can(domain.CapabilityAdmin):
	case actor.Can(domain.CapabilitySeller) && actor.ShopID != "":
		if input.ShopID != nil && *input.ShopID != actor.ShopID {
			return nil, domain.NewAuthorizationError("sellers can only list their own withdrawals")
		}
		shopID := actor.ShopID
		filter.ShopID = &shopID
	default:
		return nil, domain.NewAuthorizationError("admin or seller access required")
	}

	if !sortFields[filter.SortBy] {
		return nil, domain.NewValidationError("unsupported sort field %q", filter.SortBy)
	}
	if filter.SortOrder != "" && filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		return nil, domain.NewValidationError("sort order must be asc or desc")
	}
	if filter.Limit < 0 || filter.Page < 0 {
		return nil, domain.NewValidationError("page and limit must not be negative")
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	withdrawals, total, err := uc.withdrawalRepo.GetWithdrawals(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &withdrawaldto.ListWithdrawalsOutput{
		Withdrawals: withdrawals,
		Pagination:  dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (uc *DefaultWithdrawalUsecase) GetWithdrawal(ctx context.Context, actor domain.Actor, withdrawalID string) (*domain.Withdrawal, error) {
	if !actor.Can(domain.CapabilityAdmin) && !actor.Can(domain.CapabilitySeller) {
		return nil, domain.NewAuthorizationError("admin or seller access required")
	}

	w, err := uc.withdrawalRepo.GetWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if !actor.Can(domain.CapabilityAdmin) && !actor.IsSellerOf(w.ShopID) {
		// hide other shops' requests
		return nil, domain.ErrWithdrawalNotFound
	}
	return w, nil
}
