package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/multivendor-shop/internal/config"
	"github.com/Lixing-Zhang/multivendor-shop/internal/handlers"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
	"github.com/Lixing-Zhang/multivendor-shop/internal/service"
	"github.com/Lixing-Zhang/multivendor-shop/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting multi-vendor shop api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()
	cartRepo := repository.NewInMemoryCartRepositoryWithLimit(cfg.Cart.MaxLineQuantity)
	orderRepo := repository.NewInMemoryOrderRepository()

	// Initialize services
	productService := service.NewProductService(productRepo, cfg.Catalog.DefaultParPage)
	cartService := service.NewCartService(productRepo, cartRepo, cfg.Cart.ShippingFeePerSeller, log)
	orderService := service.NewOrderService(cartService, productRepo, cartRepo, orderRepo)

	router := handlers.NewRouter(handlers.Handlers{
		Health:  handlers.NewHealthHandler(productRepo, log),
		Product: handlers.NewProductHandler(productService, log),
		Cart:    handlers.NewCartHandler(cartService, log),
		Order:   handlers.NewOrderHandler(orderService, log),
	}, cfg.Auth, log, time.Duration(cfg.Server.RequestTimeout)*time.Second)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
