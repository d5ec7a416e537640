package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"countryfx/internal/adapters/cache"
	"countryfx/internal/adapters/httpclient"
	"countryfx/internal/adapters/postgres"
	"countryfx/internal/api"
	"countryfx/internal/config"
	"countryfx/internal/country"
	"countryfx/internal/country/handler"
	"countryfx/internal/domain"
	"countryfx/internal/platform/db"
	httpserver "countryfx/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	refreshStrategy, err := domain.ParseRefreshStrategy(appCfg.Refresh.Strategy)
	if err != nil {
		return err
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (migrations, DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Schema migrations run before the pool exists
	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	countriesClient := httpclient.NewCountriesClient(baseHTTPClient, appCfg.CountriesAPI.BaseURL)
	rateClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.ExchangeRateAPI.BaseURL)

	// Repository and read cache
	countryRepo := postgres.NewCountryRepository(pool)
	countryCache, err := cache.NewCountryCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create country cache")
		return err
	}
	defer countryCache.Close()

	// Services
	countryService := country.NewService(countryRepo, countryCache)
	refresher := country.NewRefresher(
		countriesClient,
		rateClient,
		countryRepo,
		countryCache,
		refreshStrategy,
		appCfg.Refresh.BatchLimit,
		strings.ToUpper(appCfg.ExchangeRateAPI.BaseCode),
	)

	// Optional periodic refresh
	if appCfg.Scheduler.Enabled {
		scheduler := country.NewScheduler(refresher, time.Duration(appCfg.Scheduler.IntervalMinutes)*time.Minute)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		// Start scheduler tied to root context
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	countryHandler := handler.NewCountryHandler(countryService, refresher)
	router := api.NewRouter(countryHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
