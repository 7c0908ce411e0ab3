package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antonminaichev/flower-shop/internal/analytics"
	"github.com/antonminaichev/flower-shop/internal/bot"
	"github.com/antonminaichev/flower-shop/internal/cart"
	"github.com/antonminaichev/flower-shop/internal/catalog"
	"github.com/antonminaichev/flower-shop/internal/content"
	"github.com/antonminaichev/flower-shop/internal/logger"
	"github.com/antonminaichev/flower-shop/internal/metrics"
	"github.com/antonminaichev/flower-shop/internal/notify"
	"github.com/antonminaichev/flower-shop/internal/order"
	"github.com/antonminaichev/flower-shop/internal/router"
	"github.com/antonminaichev/flower-shop/internal/stats"
	storage "github.com/antonminaichev/flower-shop/internal/storage/postgres"
	"github.com/antonminaichev/flower-shop/internal/user"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	chatIDs, err := cfg.ChatIDs()
	if err != nil {
		return err
	}

	botCtx, botCancel := context.WithCancel(context.Background())
	defer botCancel()

	var notifier order.Notifier = notify.NopNotifier{}
	httpClient := &http.Client{Timeout: 65 * time.Second}
	tg, err := notify.NewTelegramClient(httpClient, cfg.TelegramToken, chatIDs)
	switch {
	case err == nil:
		defer tg.Close()
		notifier = notify.NewOrderNotifier(tg, store, chatIDs, cfg.MediaRoot, loc)
	case errors.Is(err, notify.ErrNotConfigured):
		log.Println("Telegram is not configured, order notifications are disabled")
	default:
		return err
	}

	userSvc := user.NewService(store, []byte(cfg.JWTSecret), cfg.JWTTTL)
	userHandler := user.NewHandler(userSvc)

	catalogSvc := catalog.NewService(store)
	catalogHandler := catalog.NewHandler(catalogSvc)

	cartSvc := cart.NewService(store, store, store)
	cartHandler := cart.NewHandler(cartSvc)

	orderSvc := order.NewService(store, store, store, store, notifier)
	orderHandler := order.NewHandler(orderSvc)

	statsSvc := stats.NewService(store, loc)

	analyticsSvc := analytics.NewService(store, statsSvc)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	contentHandler := content.NewHandler(store)

	serverMetrics := metrics.NewServerMetrics()

	r := router.NewRouter(userHandler, catalogHandler, cartHandler, orderHandler, analyticsHandler, contentHandler, []byte(cfg.JWTSecret), store, serverMetrics)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if tg != nil {
		operatorBot := bot.New(tg, orderSvc, statsSvc, loc)
		go operatorBot.Run(botCtx)
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	botCancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
