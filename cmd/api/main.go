package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wreathworks/internal/cache"
	"wreathworks/internal/config"
	"wreathworks/internal/db"
	"wreathworks/internal/delivery"
	"wreathworks/internal/httpserver"
	cartrepo "wreathworks/internal/repository/cart"
	catalogrepo "wreathworks/internal/repository/catalog"
	orderrepo "wreathworks/internal/repository/order"
	cartsvc "wreathworks/internal/service/cart"
	ordersvc "wreathworks/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var invalidator cache.Invalidator = cache.Noop{}
	if cfg.RedisAddr != "" {
		invalidator = cache.NewRedis(cfg.RedisAddr, "wreathworks")
	}

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	cartService := cartsvc.New(cartRepo, catalogRepo, invalidator, logger)
	orderService := ordersvc.New(orderRepo, cartRepo, catalogRepo, delivery.NewFlatRates(), logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  catalogRepo,
		CartSvc:  cartService,
		OrderSvc: orderService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
