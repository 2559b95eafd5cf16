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

	"github.com/redis/go-redis/v9"

	"github.com/urbanwear/storefront/internal/api"
	"github.com/urbanwear/storefront/internal/cart"
	"github.com/urbanwear/storefront/internal/cart/cache"
	"github.com/urbanwear/storefront/internal/cart/repository"
	"github.com/urbanwear/storefront/internal/catalog"
	"github.com/urbanwear/storefront/internal/checkout"
	"github.com/urbanwear/storefront/internal/config"
	"github.com/urbanwear/storefront/internal/localstore"
	"github.com/urbanwear/storefront/internal/order"
	"github.com/urbanwear/storefront/internal/order/archive"
	"github.com/urbanwear/storefront/internal/order/publisher"
	"github.com/urbanwear/storefront/internal/payment"
	"github.com/urbanwear/storefront/internal/pricing"
	"github.com/urbanwear/storefront/internal/returns"
	"github.com/urbanwear/storefront/internal/shipping"
	"github.com/urbanwear/storefront/internal/wishlist"
)

func main() {
	cfg := config.Load()

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}

	cartRepo, closeRepo := buildCartRepository(cfg, store)
	defer closeRepo()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	// An unreachable redis only disables caching; cart reads fall
	// through to the repository.
	cartService := cart.NewService(cartRepo, cache.NewRedisCache(redisClient))

	catalogRepo, err := catalog.NewRepository(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsDir); err != nil {
		log.Fatalf("failed to migrate catalog: %v", err)
	}

	calculator := pricing.NewCalculator(cfg.Pricing)
	dispatcher := payment.NewDispatcher(
		cfg.Gateways,
		payment.NewClient(cfg.Gateways.BaseURL, cfg.RequestTimeout),
		payment.AutoPolicy{Force: cfg.Gateways.ForceSandbox, DevMode: cfg.Gateways.DevMode},
	)

	lastOrderStore := order.NewLastOrderStore(store)
	shippingStore := shipping.NewStore()
	returnsStore := returns.NewStore()
	wishlistService := wishlist.NewService(store)

	rootCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()

	archiveRepo, poller := buildArchive(rootCtx, cfg)
	if poller != nil {
		defer poller.Close()
	}
	var checkoutService *checkout.Service
	if archiveRepo != nil {
		defer archiveRepo.Close()
		checkoutService = checkout.NewService(cartService, calculator, dispatcher, lastOrderStore, shippingStore, archiveRepo)
	} else {
		checkoutService = checkout.NewService(cartService, calculator, dispatcher, lastOrderStore, shippingStore, nil)
	}

	router := api.NewRouter(api.Services{
		Cart:      cartService,
		Catalog:   catalogRepo,
		Checkout:  checkoutService,
		LastOrder: lastOrderStore,
		Shipping:  shippingStore,
		Returns:   returnsStore,
		Wishlist:  wishlistService,
		Gateways:  cfg.Gateways,
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// buildCartRepository picks mongo when configured, otherwise the
// localstore repository that mirrors the browser's storage keys.
func buildCartRepository(cfg *config.Config, store *localstore.Store) (repository.CartRepository, func()) {
	if cfg.MongoURI == "" {
		return repository.NewLocalRepository(store), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection, closeMongo, err := repository.NewMongoCollection(ctx, cfg.MongoURI, "storefront")
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	return repository.NewMongoRepository(collection), closeMongo
}

// buildArchive wires the optional postgres order archive and, when
// brokers are configured, starts the outbox poller next to it. The
// caller owns closing both.
func buildArchive(ctx context.Context, cfg *config.Config) (*archive.Repository, *publisher.OutboxPoller) {
	if cfg.Postgres == nil {
		return nil, nil
	}

	creds := &archive.Credentials{
		Host:              cfg.Postgres.Host,
		Port:              cfg.Postgres.Port,
		User:              cfg.Postgres.User,
		Password:          cfg.Postgres.Password,
		DBName:            cfg.Postgres.DBName,
		MigrationsDirPath: cfg.Postgres.MigrationsDirPath,
	}

	repo, err := archive.NewRepository(creds)
	if err != nil {
		log.Fatalf("failed to connect to order archive: %v", err)
	}
	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("failed to migrate order archive: %v", err)
	}

	var poller *publisher.OutboxPoller
	if len(cfg.KafkaBrokers) > 0 {
		poller = publisher.NewOutboxPoller(repo, cfg.KafkaBrokers...)
		go poller.Run(ctx)
	}

	return repo, poller
}
