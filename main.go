package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
	"github.com/infpro/storefront-api/config"
	ordercontroller "github.com/infpro/storefront-api/controllers/order"
	productcontroller "github.com/infpro/storefront-api/controllers/product"
	"github.com/infpro/storefront-api/logger"
	"github.com/infpro/storefront-api/middleware"
	"github.com/infpro/storefront-api/routes"
	"github.com/infpro/storefront-api/store"
	"github.com/infpro/storefront-api/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "storefront-api"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel})
	log.Info("starting application", "port", cfg.Port)

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using the default development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTelTraces, serviceName)
	if err != nil {
		log.Error("init tracer", "error", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	if err := st.Seed(ctx); err != nil {
		log.Error("seed store", "error", err)
		os.Exit(1)
	}

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := ordercontroller.NewHub()
	deps := routes.Dependencies{
		Catalog:     productcontroller.NewCatalog(st.Products),
		Auth:        auth.NewService(st.Users, cfg.JWTSecret),
		Orders:      ordercontroller.NewService(st.Orders, hub),
		Hub:         hub,
		AdminAPIKey: cfg.AdminAPIKey,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerMinute),

		TrustedProxies: cfg.TrustedProxies,
	}
	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		deps.PublicDir = cfg.PublicDir
	}
	r := routes.NewRouter(deps)

	// Back up the JSON data daily at 2 AM
	if cfg.BackupDir != "" && cfg.DatabaseURL == "" {
		go store.RunDailyBackup(ctx, cfg.DataDir, cfg.BackupDir, cfg.BackupRetention, 2, 0)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown", "error", err)
	}
}

// openStore picks Postgres when DATABASE_URL is set, JSON files otherwise.
func openStore(cfg config.Config) (*store.Store, error) {
	if cfg.DatabaseURL != "" {
		slog.Info("using postgres storage")
		return store.OpenPostgres(cfg.DatabaseURL)
	}
	slog.Info("using file storage", "dir", cfg.DataDir)
	return store.OpenFiles(cfg.DataDir)
}
