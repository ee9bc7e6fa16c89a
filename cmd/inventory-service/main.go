package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/api"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/application"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/config"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/lock"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/messaging"
	outboxinfra "github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/outbox"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/storage"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)
	defer log.Sync() //nolint:errcheck

	log.Info("starting inventory service",
		zap.String("port", cfg.HttpPort),
		zap.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: primer backend disponible
	backend, err := storage.Open(ctx, storage.Options{
		Backends:   cfg.StorageBackends,
		PgDsn:      cfg.PgDsn,
		SqlitePath: cfg.SqlitePath,
	}, log)
	if err != nil {
		log.Fatal("no storage backend available", zap.Error(err))
	}
	defer backend.Close()

	locker, closeLocker := newLocker(ctx, cfg, backend, log)
	defer closeLocker()

	// Outbox writer + publisher
	outboxWriter := application.NewOutboxWriter(backend.Outbox)
	publisher, buses, closePublisher := newPublisher(cfg, log)
	defer closePublisher()

	dispatcher := outboxinfra.NewDispatcher(
		backend.Outbox,
		publisher,
		cfg.OutboxMaxRetry,
		cfg.OutboxBatchSize,
		log.Named("outbox"),
	)
	scheduler := outboxinfra.NewScheduler(dispatcher, cfg.OutboxIntervalSec, log.Named("outbox"))
	scheduler.Start(ctx)

	// Application services
	catalog := application.NewCatalog(backend.Products)
	resolver := application.NewAvailabilityResolver(catalog, backend.Products, backend.Ledger)
	validator := application.NewReservationValidator(backend.Products, resolver)
	checkoutSvc := application.NewCheckoutService(backend.Products, backend.Ledger, validator, locker, outboxWriter, log.Named("checkout"))
	adminSvc := application.NewProductAdminService(backend.Products, catalog, resolver, locker, outboxWriter, log.Named("admin"))
	salesSvc := application.NewSalesService(backend.Ledger, outboxWriter, log.Named("sales"))

	// Suscripciones (solo RabbitMQ consume eventos)
	if buses != nil {
		orderPlacedHandler := application.NewOrderPlacedHandler(checkoutSvc, outboxWriter, log.Named("orders"))
		productCreatedHandler := application.NewProductCreatedHandler(adminSvc, resolver, outboxWriter, log.Named("catalog"))

		if err := messaging.RegisterOrderSubscriptions(ctx, buses.OrdersConsumer, orderPlacedHandler, log); err != nil {
			log.Fatal("failed to start orders subscriptions", zap.Error(err))
		}
		if err := messaging.RegisterCatalogSubscriptions(ctx, buses.CatalogConsumer, productCreatedHandler, log); err != nil {
			log.Fatal("failed to start catalog subscriptions", zap.Error(err))
		}
	}

	// HTTP API
	apiServer := api.NewServer(cfg, api.Services{
		Admin:    adminSvc,
		Resolver: resolver,
		Checkout: checkoutSvc,
		Sales:    salesSvc,
	}, backend.Name, log.Named("http"))

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HttpPort,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	// Esperar señal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down inventory service", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	cancel()
	scheduler.Wait()
}

// newLocker picks the KeyLocker for checkouts and admin edits. Distributed lockers
// fall back to the in-process one when their backend cannot serve them.
func newLocker(ctx context.Context, cfg config.Config, backend *storage.Backend, log *zap.Logger) (domain.KeyLocker, func()) {
	noop := func() {}
	switch cfg.LockBackend {
	case "postgres":
		if backend.Name != storage.BackendPostgres {
			log.Warn("postgres locks need the postgres storage backend, using local locks",
				zap.String("storage", backend.Name))
			break
		}
		// pool propio: los repositorios no deben competir con los que esperan un lock
		locker, err := lock.OpenPgAdvisoryLocker(ctx, cfg.PgDsn, cfg.LockPoolSize, log.Named("lock"))
		if err != nil {
			log.Warn("postgres lock pool unavailable, using local locks", zap.Error(err))
			break
		}
		log.Info("using postgres advisory locks", zap.Int("pool", cfg.LockPoolSize))
		return locker, func() { _ = locker.Close() }
	case "redis":
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.RedisAddr},
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Info("using redis locks", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.LockTTL))
			return lock.NewRedisLocker(client, cfg.LockTTL, log.Named("lock")), func() { _ = client.Close() }
		}
		log.Warn("redis unavailable, using local locks", zap.Error(err))
		_ = client.Close()
	}
	return lock.NewLocalLocker(), noop
}

// newPublisher builds the outbox publisher for the configured broker. The returned
// buses are non-nil only for RabbitMQ, which also consumes orders and catalog events.
func newPublisher(cfg config.Config, log *zap.Logger) (outboxinfra.Publisher, *messaging.Buses, func()) {
	noop := func() {}
	switch cfg.Broker {
	case "rabbitmq":
		buses := messaging.NewBuses(cfg.RabbitUri)
		log.Info("using rabbitmq broker")
		return buses.Producer, &buses, noop
	case "kafka":
		pub, err := messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log.Named("kafka"))
		if err != nil {
			log.Fatal("failed to create kafka publisher", zap.Error(err))
		}
		log.Info("using kafka broker", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
		return pub, nil, func() { _ = pub.Close() }
	default:
		log.Info("no broker configured, outbox events are only logged")
		return outboxinfra.NewLogPublisher(log.Named("outbox")), nil, noop
	}
}
