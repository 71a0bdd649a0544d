// Package server boots the storefront: configuration, datastores, workers,
// scheduler, and the HTTP and gRPC servers.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildmaster/storefront/app/jobs"
	"github.com/buildmaster/storefront/app/listeners"
	"github.com/buildmaster/storefront/app/routes"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/config"
	"github.com/buildmaster/storefront/pkg/cache"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/grpcserver"
	"github.com/buildmaster/storefront/pkg/logger"
	"github.com/buildmaster/storefront/pkg/metrics"
	"github.com/buildmaster/storefront/pkg/middleware"
	"github.com/buildmaster/storefront/pkg/migration"
	"github.com/buildmaster/storefront/pkg/queue"
	"github.com/buildmaster/storefront/pkg/reqid"
	"github.com/buildmaster/storefront/pkg/router"
	"github.com/buildmaster/storefront/pkg/schedule"
	"github.com/buildmaster/storefront/pkg/session"
)

const queueWorkers = 4

// Boot initialises everything the application needs short of listening:
// config, logging, database, cache, queue and event listeners. The CLI
// commands call Boot before doing their work.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}

	logger.Configure()
	setupMongoLogSink()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("boot: redis unavailable, caching and sessions degrade", "error", err)
	}

	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	jobs.Register()
	listeners.Register()

	return nil
}

// Start runs the full server: Boot, pending migrations, background
// workers, the scheduler, and the HTTP and gRPC listeners. It blocks until
// SIGINT/SIGTERM and then shuts down gracefully.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)
	registerSchedules()
	schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)
	routes.RegisterAPI(r)

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		grpcserver.Stop(grpcSrv)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	grpcserver.Stop(grpcSrv)
	return nil
}

// registerSchedules sets up the recurring maintenance tasks.
func registerSchedules() {
	cartService := services.NewCartService()

	schedule.Every(30).Seconds().Name("pending-carts-gauge").Run(func() {
		count, err := cartService.PendingCartCount()
		if err != nil {
			logger.Warn("schedule: pending cart count failed", "error", err)
			return
		}
		metrics.PendingCarts.Set(float64(count))
	})
}

// setupMongoLogSink mirrors log records into MongoDB when LOG_MONGO_URI is
// configured. Failure to reach Mongo keeps the stdout logger only.
func setupMongoLogSink() {
	uri := config.LogMongoURI()
	if uri == "" {
		return
	}

	mongoHandler, err := logger.NewMongoHandler(uri, "storefront", "logs")
	if err != nil {
		logger.Warn("boot: mongo log sink unavailable", "error", err)
		return
	}

	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mongoHandler))
	slog.SetDefault(logger.L)
}
