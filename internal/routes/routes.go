package routes

import (
	"context"
	"io"
	"net/http"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"buildersite/internal/controllers"
	"buildersite/internal/middleware"
)

// Dependencies is everything the router hands out to handlers.
type Dependencies struct {
	ServiceAreas *controllers.ServiceAreaController
	Coverage     *controllers.CoverageController
	Quotes       *controllers.QuoteController
	Auth         *controllers.AuthController
	JWT          *middleware.JWT

	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer

	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error

	// GeocoderState names the geocoder circuit breaker state for /healthz.
	GeocoderState func() string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.AccessLog != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithWriter(deps.AccessLog),
			ginlog.WithUTC(true),
			ginlog.WithSkipPath([]string{"/healthz", "/metrics"}),
		))
	}
	r.Use(middleware.Metrics())

	r.GET("/healthz", healthz(deps.Ping, deps.GeocoderState))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	PublicRoutes(r, deps)
	AuthRoutes(r, deps.Auth)
	AdminRoutes(r, deps)

	return r
}

func healthz(ping func(ctx context.Context) error, geocoderState func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if geocoderState != nil {
			// Informational only; an open breaker does not fail the check.
			body["geocoder"] = geocoderState()
		}
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logrus.WithError(err).Warn("Health check: database unreachable")
				body["status"] = "unavailable"
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
