package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"buildersite/internal/geo"
	"buildersite/internal/geocoding"
	"buildersite/internal/metrics"
	"buildersite/internal/models"
	"buildersite/internal/repository"
)

// AreaRef names a matching service area.
type AreaRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Coverage is the answer to "do you build here?".
type Coverage struct {
	Point       geo.Point `json:"point"`
	Address     string    `json:"address,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Served      bool      `json:"served"`
	AreaIDs     []string  `json:"area_ids"`
	Areas       []AreaRef `json:"areas"`
}

// CoverageService resolves coordinates or addresses to the active service
// areas containing them. It never writes.
type CoverageService struct {
	areas          repository.ServiceAreaRepository
	geocoder       geocoding.Geocoder
	geocodeTimeout time.Duration
}

func NewCoverageService(areas repository.ServiceAreaRepository, geocoder geocoding.Geocoder, geocodeTimeout time.Duration) *CoverageService {
	return &CoverageService{areas: areas, geocoder: geocoder, geocodeTimeout: geocodeTimeout}
}

// CheckPoint loads the active areas once and tests pt against each.
func (s *CoverageService) CheckPoint(ctx context.Context, pt geo.Point) (*Coverage, error) {
	if math.IsNaN(pt.Lat) || math.IsNaN(pt.Lon) || !pt.InRange() {
		return nil, ErrInvalidPoint
	}

	stored, err := s.areas.List(ctx, repository.ServiceAreaFilter{ActiveOnly: true})
	if err != nil {
		metrics.CoverageChecksTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	candidates := make([]geo.Area, len(stored))
	byID := make(map[string]models.ServiceArea, len(stored))
	for i, a := range stored {
		candidates[i] = a
		byID[a.AreaID()] = a
	}

	ids := geo.FindServiceAreasContaining(pt, candidates, func(a geo.Area, err error) {
		logrus.WithError(err).WithField("service_area_id", a.AreaID()).
			Error("Coverage: stored service area has an invalid boundary")
	})

	cov := &Coverage{
		Point:   pt,
		Served:  len(ids) > 0,
		AreaIDs: ids,
		Areas:   make([]AreaRef, 0, len(ids)),
	}
	for _, id := range ids {
		cov.Areas = append(cov.Areas, AreaRef{ID: id, Name: byID[id].Name})
	}

	if cov.Served {
		metrics.CoverageChecksTotal.WithLabelValues("served").Inc()
	} else {
		metrics.CoverageChecksTotal.WithLabelValues("unserved").Inc()
	}
	return cov, nil
}

// CheckAddress geocodes address under the configured timeout and then runs
// CheckPoint. geocoding.ErrNotFound and *geocoding.ServiceError are returned
// unchanged so the caller can tell them apart.
func (s *CoverageService) CheckAddress(ctx context.Context, address string) (*Coverage, error) {
	res, err := s.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocoding.ErrNotFound) {
			metrics.CoverageChecksTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.CoverageChecksTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	cov, err := s.CheckPoint(ctx, geo.Point{Lat: res.Latitude, Lon: res.Longitude})
	if err != nil {
		return nil, err
	}
	cov.Address = address
	cov.DisplayName = res.DisplayName
	return cov, nil
}

// Geocode calls the geocoder with the configured timeout.
func (s *CoverageService) Geocode(ctx context.Context, address string) (*geocoding.Result, error) {
	if s.geocoder == nil {
		return nil, &geocoding.ServiceError{Provider: "none", Err: errors.New("geocoding is not configured")}
	}
	if s.geocodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.geocodeTimeout)
		defer cancel()
	}
	return s.geocoder.Geocode(ctx, address)
}
