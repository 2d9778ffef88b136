package withdrawal

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListWithdrawals_AdminFilters(t *testing.T) {
	f := newFixture(t, Options{})
	shopID := "shop-2"
	status := domain.WithdrawalRejected

	f.withdrawals.On("GetWithdrawals", mock.Anything, domain.WithdrawalFilter{
		ShopID: &shopID, Status: &status, SortBy: "amount", SortOrder: "asc", Page: 2, Limit: 10,
	}).Return([]*domain.Withdrawal{processingWithdrawal()}, int64(11), nil).Once()

	out, err := f.uc.ListWithdrawals(context.Background(), admin, withdrawaldto.ListWithdrawalsInput{
		ShopID: &shopID, Status: &status, SortBy: "amount", SortOrder: "asc", Page: 2, Limit: 10,
	})

	require.NoError(t, err)
	assert.Len(t, out.Withdrawals, 1)
	assert.Equal(t, 2, out.Pagination.CurrentPage)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Equal(t, int64(11), out.Pagination.TotalItems)
	f.assertExpectations(t)
}

func TestListWithdrawals_SellerSeesOwnShop(t *testing.T) {
	f := newFixture(t, Options{})

	f.withdrawals.On("GetWithdrawals", mock.Anything, mock.MatchedBy(func(filter domain.WithdrawalFilter) bool {
		return filter.ShopID != nil && *filter.ShopID == "shop-1" && filter.Page == 1
	})).Return([]*domain.Withdrawal{}, int64(0), nil).Once()

	_, err := f.uc.ListWithdrawals(context.Background(), seller, withdrawaldto.ListWithdrawalsInput{})

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestListWithdrawals_SellerCannotListOtherShop(t *testing.T) {
	f := newFixture(t, Options{})
	other := "shop-2"

	_, err := f.uc.ListWithdrawals(context.Background(), seller, withdrawaldto.ListWithdrawalsInput{ShopID: &other})

	assert.ErrorIs(t, err, domain.ErrAuthorization)
	f.withdrawals.AssertNotCalled(t, "GetWithdrawals", mock.Anything, mock.Anything)
}

func TestListWithdrawals_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input withdrawaldto.ListWithdrawalsInput
	}{
		{name: "sort field", input: withdrawaldto.ListWithdrawalsInput{SortBy: "email"}},
		{name: "sort order", input: withdrawaldto.ListWithdrawalsInput{SortOrder: "sideways"}},
		{name: "negative limit", input: withdrawaldto.ListWithdrawalsInput{Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			_, err := f.uc.ListWithdrawals(context.Background(), admin, tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGetWithdrawal_HidesOtherShops(t *testing.T) {
	f := newFixture(t, Options{})
	w := processingWithdrawal()
	w.ShopID = "shop-2"
	f.withdrawals.On("GetWithdrawalByID", mock.Anything, "wd-1").Return(w, nil)

	_, err := f.uc.GetWithdrawal(context.Background(), seller, "wd-1")
	assert.ErrorIs(t, err, domain.ErrWithdrawalNotFound)

	got, err := f.uc.GetWithdrawal(context.Background(), admin, "wd-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-2", got.ShopID)
}

func TestGetWithdrawal_RequiresRole(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.uc.GetWithdrawal(context.Background(), domain.Actor{UserID: "anon"}, "wd-1")

	assert.ErrorIs(t, err, domain.ErrAuthorization)
}
