package handlers

import (
	"net/http"

	shopRequest "github.com/LavaJover/shvark-payout-service/internal/delivery/http/dto/shop/request"
	shopResponse "github.com/LavaJover/shvark-payout-service/internal/delivery/http/dto/shop/response"
	"github.com/LavaJover/shvark-payout-service/internal/delivery/http/middleware"
	shopdto "github.com/LavaJover/shvark-payout-service/internal/usecase/dto/shop"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/shop"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ShopHandler struct {
	uc       shop.ShopUsecase
	validate *validator.Validate
	responder
}

func NewShopHandler(uc shop.ShopUsecase, validate *validator.Validate, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, validate: validate, responder: responder{logger: logger}}
}

func (h *ShopHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.GetOwnShop(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.ShopEnvelope{Success: true, Shop: shopResponse.NewShopResponse(s)})
}

func (h *ShopHandler) GetOwnTransactions(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	txs, err := h.uc.GetTransactions(r.Context(), actor, actor.ShopID)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.NewTransactionsResponse(txs))
}

func (h *ShopHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.uc.GetTransactions(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.NewTransactionsResponse(txs))
}

func (h *ShopHandler) UpdateWithdrawMethod(w http.ResponseWriter, r *http.Request) {
	var req shopRequest.WithdrawMethodRequest
	if err := decode(r, h.validate, &req); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	s, err := h.uc.UpdateWithdrawMethod(r.Context(), middleware.ActorFrom(r.Context()), shopdto.UpdateWithdrawMethodInput{
		Type:              req.Type,
		BankName:          req.BankName,
		BankCountry:       req.BankCountry,
		BankSwiftCode:     req.BankSwiftCode,
		AccountHolderName: req.AccountHolderName,
		AccountNumber:     req.AccountNumber,
		BankAddress:       req.BankAddress,
	})
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.ShopEnvelope{Success: true, Shop: shopResponse.NewShopResponse(s)})
}

func (h *ShopHandler) DeleteWithdrawMethod(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.DeleteWithdrawMethod(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.ShopEnvelope{Success: true, Shop: shopResponse.NewShopResponse(s)})
}

// GetInfo is public.
func (h *ShopHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.uc.GetShopInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, shopResponse.NewShopInfoEnvelope(info))
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	out, err := h.uc.ListShops(r.Context(), middleware.ActorFrom(r.Context()), page, limit)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	resp := shopResponse.ListShopsResponse{
		Success:    true,
		Shops:      make([]shopResponse.ShopResponse, len(out.Shops)),
		Pagination: paginationResponse(out.Pagination),
	}
	for i, s := range out.Shops {
		resp.Shops[i] = shopResponse.NewShopResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteShop(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
