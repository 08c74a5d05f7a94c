package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto-backend/internal/cache"
	"resto-backend/internal/config"
	"resto-backend/internal/database"
	"resto-backend/internal/db"
	"resto-backend/internal/handlers"
	"resto-backend/internal/health"
	h "resto-backend/internal/http"
	"resto-backend/internal/logger"
	"resto-backend/internal/middleware"
	"resto-backend/internal/realtime"
	"resto-backend/internal/repositories"
	"resto-backend/internal/repositories/memory"
	"resto-backend/internal/retry"
	"resto-backend/internal/services"
	"resto-backend/internal/storage"
	"resto-backend/internal/timeutil"

	"go.uber.org/zap"
)

// stores bundles the record store implementations chosen at startup.
type stores struct {
	bills  services.BillStore
	tables services.TableStore
	menu   services.MenuStore
	ping   health.Pinger
	close  func()
}

func openStores(ctx context.Context, kind string, cfg *config.Config, migrate bool, zl *zap.Logger) (*stores, error) {
	switch kind {
	case "memory":
		ms := memory.New()
		zl.Warn("using in-memory store, data is lost on restart")
		return &stores{bills: ms, tables: ms, menu: ms, ping: ms, close: func() {}}, nil

	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
		if err != nil {
			return nil, err
		}
		zl.Info("connected to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name))

		if migrate {
			if err := database.NewMigrator(cfg.DatabaseURL(), zl).Up(); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &stores{
			bills:  repositories.NewBillRepository(pool),
			tables: repositories.NewTableRepository(pool),
			menu:   repositories.NewMenuItemRepository(pool),
			ping:   pool,
			close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q (want postgres or memory)", kind)
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config file")
	storeKind := flag.String("store", "postgres", "Record store: postgres or memory")
	migrate := flag.Bool("migrate", true, "Apply database migrations on startup")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	zl, err := logger.New(logger.ConfigFor(cfg.Env, logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := timeutil.SetLocation(cfg.Timezone); err != nil {
		zl.Warn("unknown timezone, keeping IST", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, *storeKind, cfg, *migrate, zl)
	if err != nil {
		zl.Fatal("record store unavailable", zap.Error(err))
	}
	defer st.close()

	// Redis is optional. Without it every analytics call goes to the store.
	redisCache, err := cache.Connect(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		zl.Warn("redis unavailable, analytics caching disabled", zap.Error(err))
	}
	var cachePing health.Pinger
	if redisCache != nil {
		cachePing = redisCache
		defer redisCache.Close()
		zl.Info("analytics cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var archiver services.Archiver
	if cfg.ArchiveEnabled() {
		s3Archiver, err := storage.NewS3Archiver(ctx, storage.Options{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			Bucket:    cfg.Archive.Bucket,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Prefix:    cfg.Archive.Prefix,
		})
		if err != nil {
			zl.Fatal("report archive misconfigured", zap.Error(err))
		}
		archiver = s3Archiver
	}

	gateway := retry.New(retry.Policy{MaxAttempts: cfg.Retry.MaxAttempts, BaseDelay: cfg.Retry.BaseDelay}, zl)

	hub := realtime.NewHub(zl)
	go hub.Run(ctx)

	clock := timeutil.Clock(timeutil.Now)

	// Services
	analyticsService := services.NewAnalyticsService(st.bills, redisCache, clock, zl)
	tableService := services.NewTableService(st.tables, st.bills, gateway, hub, redisCache, clock, zl)
	menuService := services.NewMenuService(st.menu, gateway, redisCache, clock)
	billService := services.NewBillService(st.bills, st.menu, st.tables, redisCache, clock, zl)
	reportService := services.NewReportService(analyticsService, archiver, zl)

	// Handlers
	router := h.NewRouter(
		handlers.NewAnalyticsHandler(analyticsService, zl),
		handlers.NewTableHandler(tableService, hub, zl),
		handlers.NewMenuHandler(menuService, zl),
		handlers.NewBillHandler(billService, zl),
		handlers.NewReportHandler(reportService, zl),
		handlers.NewHealthHandler(health.NewHealthChecker(st.ping, cachePing)),
		zl,
	)
	handler := middleware.PanicRecovery(zl)(middleware.NewCORS(cfg)(router))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", srv.Addr), zap.String("store", *storeKind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
