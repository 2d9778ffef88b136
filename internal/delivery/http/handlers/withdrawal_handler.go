package handlers

import (
	"net/http"
	"strconv"

	withdrawalRequest "github.com/LavaJover/shvark-payout-service/internal/delivery/http/dto/withdrawal/request"
	withdrawalResponse "github.com/LavaJover/shvark-payout-service/internal/delivery/http/dto/withdrawal/response"
	"github.com/LavaJover/shvark-payout-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/dto"
	withdrawaldto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/withdrawal"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/withdrawal"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type WithdrawalHandler struct {
	uc       withdrawal.WithdrawalUsecase
	validate *validator.Validate
	responder
}

func NewWithdrawalHandler(uc withdrawal.WithdrawalUsecase, validate *validator.Validate, logger *zap.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc, validate: validate, responder: responder{logger: logger}}
}

// Create handles POST /withdrawals.
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest.CreateWithdrawalRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	out, err := h.uc.RequestWithdrawal(r.Context(), middleware.ActorFrom(r.Context()), withdrawaldto.RequestWithdrawalInput{
		Amount: req.Amount,
	})
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, withdrawalResponse.CreateWithdrawalResponse{
		Success:  true,
		Withdraw: withdrawalResponse.NewWithdrawalResponse(out.Withdrawal),
		Balance:  out.Balance,
		Warnings: out.Warnings,
	})
}

// List handles GET /withdrawals?shop_id=&status=&sort_by=&sort_order=&page=&limit=
func (h *WithdrawalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := withdrawaldto.ListWithdrawalsInput{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if shopID := q.Get("shop_id"); shopID != "" {
		input.ShopID = &shopID
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := domain.ParseWithdrawalStatus(raw)
		if !ok {
			h.fail(w, r, domain.NewValidationError("unknown status %q", raw), nil)
			return
		}
		input.Status = &status
	}
	var err error
	if input.Page, err = intParam(q.Get("page")); err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if input.Limit, err = intParam(q.Get("limit")); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	out, err := h.uc.ListWithdrawals(r.Context(), middleware.ActorFrom(r.Context()), input)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	resp := withdrawalResponse.ListWithdrawalsResponse{
		Success:    true,
		Withdraws:  make([]withdrawalResponse.WithdrawalResponse, len(out.Withdrawals)),
		Pagination: paginationResponse(out.Pagination),
	}
	for i, wd := range out.Withdrawals {
		resp.Withdraws[i] = withdrawalResponse.NewWithdrawalResponse(wd)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	wd, err := h.uc.GetWithdrawal(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, withdrawalResponse.WithdrawalEnvelope{
		Success:  true,
		Withdraw: withdrawalResponse.NewWithdrawalResponse(wd),
	})
}

// UpdateStatus handles PUT /withdrawals/{id}/status.
func (h *WithdrawalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest.UpdateStatusRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	wd, err := h.uc.TransitionWithdrawal(r.Context(), middleware.ActorFrom(r.Context()),
		chi.URLParam(r, "id"), domain.WithdrawalStatus(req.Status))
	if err != nil {
		var committed any
		if wd != nil {
			committed = withdrawalResponse.NewWithdrawalResponse(wd)
		}
		h.fail(w, r, err, committed)
		return
	}

	writeJSON(w, http.StatusOK, withdrawalResponse.WithdrawalEnvelope{
		Success:  true,
		Withdraw: withdrawalResponse.NewWithdrawalResponse(wd),
	})
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("invalid number %q", raw)
	}
	return n, nil
}

func paginationResponse(p dto.Pagination) withdrawalResponse.PaginationResponse {
	return withdrawalResponse.PaginationResponse{
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalItems:   p.TotalItems,
		ItemsPerPage: p.ItemsPerPage,
	}
}
