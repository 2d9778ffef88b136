package response

import (
	"time"

	withdrawalResponse "github.com/LavaJover/shvark-payout-service/internal/delivery/http/dto/withdrawal/response"
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	shopdto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/shop"
	"github.com/shopspring/decimal"
)

type WithdrawMethodResponse struct {
	Type              string `json:"type"`
	BankName          string `json:"bank_name,omitempty"`
	BankCountry       string `json:"bank_country,omitempty"`
	BankSwiftCode     string `json:"bank_swift_code,omitempty"`
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	BankAddress       string `json:"bank_address,omitempty"`
}

type ShopResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	AvailableBalance decimal.Decimal         `json:"available_balance"`
	WithdrawMethod   *WithdrawMethodResponse `json:"withdraw_method"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func NewShopResponse(s *domain.Shop) ShopResponse {
	resp := ShopResponse{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		AvailableBalance: s.AvailableBalance,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if m := s.WithdrawMethod; m != nil {
		resp.WithdrawMethod = &WithdrawMethodResponse{
			Type:              m.Type,
			BankName:          m.BankName,
			BankCountry:       m.BankCountry,
			BankSwiftCode:     m.BankSwiftCode,
			AccountHolderName: m.AccountHolderName,
			AccountNumber:     m.AccountNumber,
			BankAddress:       m.BankAddress,
		}
	}
	return resp
}

type ShopEnvelope struct {
	Success bool         `json:"success"`
	Shop    ShopResponse `json:"shop"`
}

type ShopInfoResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ShopInfoEnvelope struct {
	Success bool             `json:"success"`
	Shop    ShopInfoResponse `json:"shop"`
}

func NewShopInfoEnvelope(info *shopdto.ShopInfo) ShopInfoEnvelope {
	return ShopInfoEnvelope{
		Success: true,
		Shop:    ShopInfoResponse{ID: info.ID, Name: info.Name, CreatedAt: info.CreatedAt},
	}
}

type ListShopsResponse struct {
	Success    bool                                  `json:"success"`
	Shops      []ShopResponse                        `json:"shops"`
	Pagination withdrawalResponse.PaginationResponse `json:"pagination"`
}

type TransactionResponse struct {
	WithdrawalID string          `json:"withdrawal_id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type TransactionsResponse struct {
	Success      bool                  `json:"success"`
	Transactions []TransactionResponse `json:"transactions"`
}

func NewTransactionsResponse(txs []domain.Transaction) TransactionsResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = TransactionResponse{
			WithdrawalID: tx.WithdrawalID,
			Amount:       tx.Amount,
			Status:       string(tx.Status),
			UpdatedAt:    tx.UpdatedAt,
		}
	}
	return TransactionsResponse{Success: true, Transactions: out}
}
