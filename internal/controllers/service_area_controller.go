package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"buildersite/internal/geo"
	"buildersite/internal/models"
	"buildersite/internal/services"
)

// ringInput accepts a boundary either as [[lat,lon],...] or as a GeoJSON
// Polygon geometry exported from a GIS tool.
type ringInput struct {
	Coordinates geo.Polygon     `json:"coordinates"`
	Geometry    json.RawMessage `json:"geometry"`
}

func (in ringInput) ring() (geo.Polygon, error) {
	// A present but short list is a polygon error, not a missing field.
	if in.Coordinates != nil {
		return in.Coordinates, nil
	}
	if len(in.Geometry) > 0 {
		return geo.ParseGeoJSON(in.Geometry)
	}
	return nil, errors.New("coordinates or geometry is required")
}

type createServiceAreaInput struct {
	ringInput
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type updateServiceAreaInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type ServiceAreaController struct {
	areas *services.ServiceAreaService
}

func NewServiceAreaController(areas *services.ServiceAreaService) *ServiceAreaController {
	return &ServiceAreaController{areas: areas}
}

// ListActive is the public map layer. ?format=geojson returns a
// FeatureCollection in lon/lat order for web map libraries.
func (ctl *ServiceAreaController) ListActive(c *gin.Context) {
	areas, err := ctl.areas.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "geojson" {
		fc, err := featureCollection(areas)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, fc)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": areas})
}

func (ctl *ServiceAreaController) List(c *gin.Context) {
	areas, err := ctl.areas.List(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": areas})
}

func (ctl *ServiceAreaController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	area, err := ctl.areas.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, area)
}

func (ctl *ServiceAreaController) Create(c *gin.Context) {
	var input createServiceAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	ring, err := input.ring()
	if err != nil {
		respondRingError(c, err)
		return
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	area, err := ctl.areas.Create(c.Request.Context(), input.Name, ring, active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, area)
}

// ReplaceCoordinates swaps the whole boundary. An invalid ring is rejected
// and the stored one is left as it was.
func (ctl *ServiceAreaController) ReplaceCoordinates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ringInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	ring, err := input.ring()
	if err != nil {
		respondRingError(c, err)
		return
	}
	area, err := ctl.areas.ReplaceCoordinates(c.Request.Context(), id, ring)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, area)
}

func (ctl *ServiceAreaController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input updateServiceAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.Name == nil && input.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	area, err := ctl.areas.Update(c.Request.Context(), id, services.ServiceAreaPatch{
		Name:     input.Name,
		IsActive: input.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, area)
}

func (ctl *ServiceAreaController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.areas.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondRingError(c *gin.Context, err error) {
	if errors.Is(err, geo.ErrInvalidPolygon) {
		respondError(c, err)
		return
	}
	badRequest(c, err)
}

func featureCollection(areas []models.ServiceArea) (*gjson.FeatureCollection, error) {
	fc := &gjson.FeatureCollection{Features: make([]*gjson.Feature, 0, len(areas))}
	for _, a := range areas {
		f, err := geo.Feature(a.AreaID(), a.AreaPolygon(), map[string]interface{}{
			"name":      a.Name,
			"is_active": a.IsActive,
		})
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}
