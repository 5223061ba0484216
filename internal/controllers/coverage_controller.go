package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"buildersite/internal/geo"
	"buildersite/internal/services"
)

type coverageInput struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Address string   `json:"address"`
}

type validatePolygonInput struct {
	Coordinates geo.Polygon `json:"coordinates"`
	Point       *geo.Point  `json:"point"`
}

type CoverageController struct {
	coverage *services.CoverageService
}

func NewCoverageController(coverage *services.CoverageService) *CoverageController {
	return &CoverageController{coverage: coverage}
}

// Check answers "do you build here?" for a coordinate pair or an address.
// Coordinates win when both are sent; half a pair is rejected.
func (ctl *CoverageController) Check(c *gin.Context) {
	var input coverageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	var (
		cov *services.Coverage
		err error
	)
	switch {
	case (input.Lat == nil) != (input.Lon == nil):
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon must be given together"})
		return
	case input.Lat != nil:
		cov, err = ctl.coverage.CheckPoint(c.Request.Context(), geo.Point{Lat: *input.Lat, Lon: *input.Lon})
	case strings.TrimSpace(input.Address) != "":
		cov, err = ctl.coverage.CheckAddress(c.Request.Context(), input.Address)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon, or address, is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cov)
}

// ValidatePolygon lets the drawing widget check a ring before saving it and,
// optionally, test a point against the unsaved ring.
func (ctl *CoverageController) ValidatePolygon(c *gin.Context) {
	var input validatePolygonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := geo.ValidatePolygon(input.Coordinates); err != nil {
		body := gin.H{"valid": false, "error": err.Error()}
		var perr *geo.InvalidPolygonError
		if errors.As(err, &perr) {
			body["reason"] = perr.Reason
			if perr.Index >= 0 {
				body["vertex"] = perr.Index
			}
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}

	body := gin.H{"valid": true, "vertices": len(input.Coordinates)}
	if input.Point != nil {
		if !input.Point.InRange() {
			respondError(c, services.ErrInvalidPoint)
			return
		}
		inside, err := geo.Contains(input.Coordinates, *input.Point)
		if err != nil {
			respondError(c, err)
			return
		}
		body["contains"] = inside
	}
	c.JSON(http.StatusOK, body)
}

// Geocode backs the search box on the admin map.
func (ctl *CoverageController) Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	res, err := ctl.coverage.Geocode(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
