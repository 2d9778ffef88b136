package response

import (
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/shopspring/decimal"
)

type SellerResponse struct {
	ShopID   string `json:"shop_id"`
	ShopName string `json:"shop_name"`
	Email    string `json:"email"`
}

type WithdrawalResponse struct {
	ID        string          `json:"id"`
	ShopID    string          `json:"shop_id"`
	Seller    SellerResponse  `json:"seller"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:     w.ID,
		ShopID: w.ShopID,
		Seller: SellerResponse{
			ShopID:   w.Seller.ShopID,
			ShopName: w.Seller.ShopName,
			Email:    w.Seller.Email,
		},
		Amount:    w.Amount,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type CreateWithdrawalResponse struct {
	Success  bool               `json:"success"`
	Withdraw WithdrawalResponse `json:"withdraw"`
	Balance  decimal.Decimal    `json:"balance"`
	Warnings []string           `json:"warnings,omitempty"`
}

type WithdrawalEnvelope struct {
	Success  bool               `json:"success"`
	Withdraw WithdrawalResponse `json:"withdraw"`
}

type PaginationResponse struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

type ListWithdrawalsResponse struct {
	Success    bool                 `json:"success"`
	Withdraws  []WithdrawalResponse `json:"withdraws"`
	Pagination PaginationResponse   `json:"pagination"`
}
