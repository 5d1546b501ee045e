package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/config"
	"github.com/xtding233/towerclimb-backend/internal/content"
	"github.com/xtding233/towerclimb-backend/internal/effect"
	"github.com/xtding233/towerclimb-backend/internal/httpapi"
	"github.com/xtding233/towerclimb-backend/internal/logger"
	"github.com/xtding233/towerclimb-backend/internal/player"
	"github.com/xtding233/towerclimb-backend/internal/reward"
	"github.com/xtding233/towerclimb-backend/internal/rpc"
	"github.com/xtding233/towerclimb-backend/internal/shop"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "towerclimb",
		Version:     version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	store, err := content.NewStore(content.NewLoader(cfg.ContentDir), log)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	if fw := store.Watch(cfg.ReloadInterval); fw != nil {
		defer fw.Stop()
	}

	svc := shop.NewService(
		store,
		reward.NewResolver(store, nil),
		effect.NewApplier(store, effect.RealClock{}),
		player.NewStore(cfg.SessionCacheSize, cfg.SessionTTL, cfg.StartingGold),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(svc, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("http server listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var grpcSrv interface{ GracefulStop() }
	if cfg.GRPCPort > 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		gs := rpc.NewGRPCServer(svc, log)
		grpcSrv = gs
		go func() {
			log.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
			if err := gs.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	err = awaitShutdown(ctx, errCh, log, func(sctx context.Context) error {
		if grpcSrv != nil {
			grpcSrv.GracefulStop()
		}
		return httpSrv.Shutdown(sctx)
	})
	if err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}

// awaitShutdown blocks until ctx ends or a server fails, then runs shutdown.
// A server failure is returned even when shutdown itself succeeds.
func awaitShutdown(ctx context.Context, errCh <-chan error, log *zap.Logger, shutdown func(context.Context) error) error {
	var failed error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case failed = <-errCh:
		log.Error("server failed", zap.Error(failed))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return errors.Join(failed, err)
	}
	return failed
}
