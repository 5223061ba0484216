// Package controllers holds the gin handlers. Handlers bind and validate the
// request, call one service method and translate its error to a status code.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"buildersite/internal/geo"
	"buildersite/internal/geocoding"
	"buildersite/internal/repository"
	"buildersite/internal/services"
)

// retryAfterSeconds is sent with 503s caused by the geocoding provider.
const retryAfterSeconds = "30"

func respondError(c *gin.Context, err error) {
	var (
		polyErr  *geo.InvalidPolygonError
		fieldErr *services.ValidationError
		svcErr   *geocoding.ServiceError
	)

	switch {
	case errors.As(err, &polyErr):
		body := gin.H{"error": polyErr.Error(), "reason": polyErr.Reason}
		if polyErr.Index >= 0 {
			body["vertex"] = polyErr.Index
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, geo.ErrInvalidPolygon):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error(), "field": fieldErr.Field})
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidPoint),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, geocoding.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOutsideServiceArea):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "served": false})
	case errors.Is(err, geocoding.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "address could not be located"})
	case errors.As(err, &svcErr):
		logrus.WithError(err).Warn("Handler: geocoding provider unavailable")
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "address lookup is temporarily unavailable"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicateName), errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Handler: unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
