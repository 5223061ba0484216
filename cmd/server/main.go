package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"buildersite/internal/config"
	"buildersite/internal/controllers"
	"buildersite/internal/geocoding"
	"buildersite/internal/logger"
	"buildersite/internal/middleware"
	"buildersite/internal/repository"
	"buildersite/internal/routes"
	"buildersite/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize structured logging to file
	accessLog, err := logger.Setup(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stdout: cfg.LogStdout})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up logging")
	}
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get sql.DB")
	}
	defer sqlDB.Close()

	// Geocoding: Nominatim behind an optional redis cache
	nomCfg := geocoding.DefaultNominatimConfig()
	nomCfg.BaseURL = cfg.NominatimURL
	nomCfg.UserAgent = cfg.NominatimUserAgent
	nomCfg.Email = cfg.NominatimEmail
	nomCfg.CountryCodes = cfg.NominatimCountryCodes
	nomCfg.HTTPTimeout = cfg.GeocodeTimeout
	nomCfg.RatePerSecond = cfg.GeocodeRatePerSec

	nominatim := geocoding.NewNominatim(nomCfg, nil)
	var geocoder geocoding.Geocoder = nominatim
	rdb, err := config.OpenRedis(ctx, cfg)
	switch {
	case err != nil:
		logrus.WithError(err).Warn("Redis unavailable, geocode cache disabled")
	case rdb != nil:
		defer rdb.Close()
		geocoder = geocoding.NewCached(geocoder, rdb, cfg.GeocodeCacheTTL, cfg.GeocodeNegativeTTL)
		logrus.WithField("addr", cfg.RedisAddr).Info("Geocode cache enabled")
	}

	areaRepo := repository.NewServiceAreaRepository(db)
	areaSvc := services.NewServiceAreaService(areaRepo)
	coverage := services.NewCoverageService(areaRepo, geocoder, cfg.GeocodeTimeout)
	quoteSvc := services.NewQuoteService(repository.NewQuoteRepository(db), coverage)
	authSvc := services.NewAuthService(repository.NewUserRepository(db))
	jwt := middleware.NewJWT(cfg.JWTSecret, cfg.JWTTTL)

	if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.WithError(err).Fatal("Failed to bootstrap admin account")
	}

	// Setup Gin router
	r := routes.SetupRouter(routes.Dependencies{
		ServiceAreas:  controllers.NewServiceAreaController(areaSvc),
		Coverage:      controllers.NewCoverageController(coverage),
		Quotes:        controllers.NewQuoteController(quoteSvc),
		Auth:          controllers.NewAuthController(authSvc, jwt),
		JWT:           jwt,
		AccessLog:     accessLog,
		Ping:          sqlDB.PingContext,
		GeocoderState: func() string { return nominatim.BreakerState().String() },
	})

	// Wrap with CORS
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.EnableCORS(cfg.CORSOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logrus.WithError(err).Fatal("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown")
	}
	logrus.Info("Server stopped")
}
