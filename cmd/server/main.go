package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/ingresso/backend/api/handler"
	"github.com/ingresso/backend/internal/config"
	"github.com/ingresso/backend/internal/infrastructure/deadletter"
	"github.com/ingresso/backend/internal/infrastructure/monitor"
	pgInfra "github.com/ingresso/backend/internal/infrastructure/postgres"
	"github.com/ingresso/backend/internal/infrastructure/queue"
	redisInfra "github.com/ingresso/backend/internal/infrastructure/redis"
	"github.com/ingresso/backend/internal/middleware"
	"github.com/ingresso/backend/internal/router"
	"github.com/ingresso/backend/internal/services"
	"github.com/ingresso/backend/internal/services/lifecycle"
	"github.com/ingresso/backend/pkg/httpcontext"
	"github.com/ingresso/backend/pkg/logger"
	"github.com/ingresso/backend/repository/postgres"
	customerUC "github.com/ingresso/backend/usecase/customer"
	eventUC "github.com/ingresso/backend/usecase/event"
	partnerUC "github.com/ingresso/backend/usecase/partner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	letters, err := deadletter.Open(cfg.DeadLetter.Path, cfg.DeadLetter.Bucket)
	if err != nil {
		zapLogger.Fatal("failed to open dead letter store", zap.Error(err))
	}
	manager.Register("dead_letter_store", func(ctx context.Context) error {
		return letters.Close()
	})

	customerRepo := postgres.NewCustomerRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)

	mon := monitor.New(pool, redisClient, outboxRepo, letters, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	gateway := queue.NewRedisGateway(redisClient, cfg.Redis.Stream, zapLogger)
	relay := services.NewOutboxRelay(outboxRepo, gateway, letters, mon, zapLogger, services.RelayConfig{
		Interval:    cfg.Outbox.Interval,
		BatchSize:   cfg.Outbox.BatchSize,
		MaxAttempts: cfg.Outbox.MaxAttempts,
	})
	relay.Start()
	manager.Register("outbox_relay", func(ctx context.Context) error {
		relay.Stop(ctx)
		return nil
	})

	customerUseCase := customerUC.New(customerRepo, zapLogger)
	partnerUseCase := partnerUC.New(partnerRepo, zapLogger)
	eventUseCase := eventUC.New(eventRepo, partnerRepo, customerRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Customer: apiHandler.NewCustomerHandler(customerUseCase, ctxAdapter, zapLogger),
		Partner:  apiHandler.NewPartnerHandler(partnerUseCase, ctxAdapter, zapLogger),
		Event:    apiHandler.NewEventHandler(eventUseCase, ctxAdapter, zapLogger),
		Admin: apiHandler.NewAdminHandler(
			customerRepo, partnerRepo, eventRepo, ticketRepo, outboxRepo,
			letters, ctxAdapter, zapLogger,
		),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	adminAuth := middleware.AdminAuth(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, zapLogger)
	r := router.New(handlers, adminAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
