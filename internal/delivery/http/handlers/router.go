package handlers

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/LavaJover/shvark-payout-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/shop"
	"github.com/LavaJover/shvark-payout-service/internal/usecase/withdrawal"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Withdrawals withdrawal.WithdrawalUsecase
	Shops       shop.ShopUsecase
	JWTSecret   string
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	// Ready is probed by /healthz.
	Ready  func(ctx context.Context) error
	Logger *zap.Logger
}

// NewValidator reports json field names in validation errors.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func NewRouter(cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	rs := responder{logger: logger}
	validate := NewValidator()
	auth := middleware.NewAuthenticator(cfg.JWTSecret, rs.unauthorized)

	withdrawals := NewWithdrawalHandler(cfg.Withdrawals, validate, logger)
	shops := NewShopHandler(cfg.Shops, validate, logger)

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(logger, cfg.HTTPMetrics),
		chimw.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Ready(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/shops/{id}", shops.GetInfo)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireActor)

			r.Post("/withdrawals", withdrawals.Create)
			r.Get("/withdrawals", withdrawals.List)
			r.Get("/withdrawals/{id}", withdrawals.Get)
			r.Put("/withdrawals/{id}/status", withdrawals.UpdateStatus)

			r.Get("/shops", shops.List)
			r.Get("/shops/me", shops.GetOwn)
			r.Get("/shops/me/transactions", shops.GetOwnTransactions)
			r.Put("/shops/me/withdraw-method", shops.UpdateWithdrawMethod)
			r.Delete("/shops/me/withdraw-method", shops.DeleteWithdrawMethod)
			r.Get("/shops/{id}/transactions", shops.GetTransactions)
			r.Delete("/shops/{id}", shops.Delete)
		})
	})

	return r
}
