package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LavaJover/shvark-payout-service/internal/app/background"
	"github.com/LavaJover/shvark-payout-service/internal/app/setup"
	"github.com/LavaJover/shvark-payout-service/internal/config"
	"github.com/LavaJover/shvark-payout-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-payout-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-payout-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	zapLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("payout service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.PayoutConfig, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, zapLogger)
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}
	defer deps.Close()

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		return fmt.Errorf("init use cases: %w", err)
	}

	httpServer := &http.Server{
		Addr: net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: handlers.NewRouter(handlers.RouterConfig{
			Withdrawals: ucs.WithdrawalUsecase,
			Shops:       ucs.ShopUsecase,
			JWTSecret:   cfg.Auth.JWTSecret,
			Gatherer:    deps.Registry,
			HTTPMetrics: deps.HTTPMetrics,
			Ready:       deps.Ready,
			Logger:      zapLogger,
		}),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	grpcLis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	grpcServer := grpcapi.NewServer(zapLogger)

	tasks := background.NewBackgroundTasks(ucs.WithdrawalUsecase, cfg.Withdrawals.ReconcileInterval, zapLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("HTTP server started", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return grpcServer.Serve(gctx, grpcLis)
	})
	g.Go(func() error {
		return tasks.Run(gctx)
	})

	err = g.Wait()
	zapLogger.Info("payout service stopped")
	return err
}
