package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/audit"
	"github.com/hairsol/booking-engine/internal/config"
	dbpkg "github.com/hairsol/booking-engine/internal/db"
	"github.com/hairsol/booking-engine/internal/handlers"
	"github.com/hairsol/booking-engine/internal/infra/memory"
	"github.com/hairsol/booking-engine/internal/infra/redislock"
	infraRepo "github.com/hairsol/booking-engine/internal/infra/repository"
	"github.com/hairsol/booking-engine/internal/logging"
	"github.com/hairsol/booking-engine/internal/outbox"
	"github.com/hairsol/booking-engine/internal/routes"
	"github.com/hairsol/booking-engine/internal/timezone"
	ucAppointment "github.com/hairsol/booking-engine/internal/usecase/appointment"
	"github.com/hairsol/booking-engine/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	clock := timezone.NewSystemClock(cfg.Timezone)
	checks := map[string]handlers.Pinger{}

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		deps        routes.Deps
		outboxStore outbox.Store
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.New()
		if cfg.SeedFile != "" {
			if err := store.LoadSeed(cfg.SeedFile); err != nil {
				return err
			}
		}
		logger.Warn("using in-memory storage; data is lost on restart")

		deps = routes.Deps{
			Catalog:      store,
			Availability: store.Availability(),
			Appointments: store.Appointments(),
			AuditStore:   store,
		}
		outboxStore = store

	default:
		db, err := dbpkg.NewDB(cfg, logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		checks["database"] = handlers.PingFunc(sqlDB.PingContext)

		deps = routes.Deps{
			Catalog:      infraRepo.NewCatalogGormRepository(db),
			Availability: infraRepo.NewAvailabilityGormRepository(db),
			Appointments: infraRepo.NewAppointmentGormRepository(db),
			AuditStore:   audit.New(db),
		}
		outboxStore = infraRepo.NewOutboxGormRepository(db)
	}

	// ======================================================
	// SINGLETONS
	// ======================================================
	dispatcher := audit.NewDispatcher(deps.AuditStore, logger)
	defer dispatcher.Close()

	var locker worker.Locker = worker.LocalLocker{}
	if cfg.RedisURL != "" {
		rdb, err := redislock.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		locker = redislock.New(rdb, "booking-engine")
	} else {
		logger.Info("REDIS_URL not set, lifecycle sweep runs without a shared lock")
	}

	deps.Audit = dispatcher
	deps.Clock = clock
	deps.Logger = logger
	deps.JWTSecret = cfg.JWTSecret
	deps.CORSOrigins = cfg.CORSOrigins
	deps.HealthChecks = checks

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	publisher := outbox.NewPublisher(outboxStore, logger, outbox.PublisherConfig{
		Brokers:   cfg.KafkaBrokers,
		PollEvery: cfg.OutboxPollInterval,
		BatchSize: cfg.OutboxBatchSize,

		DiscardWhenDisabled: cfg.StorageDriver == config.StorageDriverMemory,
	})
	go publisher.Run(ctx)

	sweeper := worker.NewLifecycleSweeper(
		ucAppointment.NewRefresher(deps.Appointments, clock, logger),
		locker,
		clock,
		logger,
		worker.SweeperConfig{Interval: cfg.SweepInterval, BatchSize: cfg.SweepBatch},
	)
	go sweeper.Run(ctx)

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", cfg.StorageDriver),
			zap.String("timezone", cfg.Timezone),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
