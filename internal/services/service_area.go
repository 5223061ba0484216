package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"buildersite/internal/geo"
	"buildersite/internal/models"
	"buildersite/internal/repository"
)

// ServiceAreaPatch carries the optional fields of a partial update.
type ServiceAreaPatch struct {
	Name     *string
	IsActive *bool
}

// ServiceAreaService is the operator-facing lifecycle of service areas:
// draw and submit, replace the ring, rename, toggle, delete.
type ServiceAreaService struct {
	repo repository.ServiceAreaRepository
}

func NewServiceAreaService(repo repository.ServiceAreaRepository) *ServiceAreaService {
	return &ServiceAreaService{repo: repo}
}

// Create validates and stores a new area. Nothing is written when the ring
// is invalid.
func (s *ServiceAreaService) Create(ctx context.Context, name string, ring geo.Polygon, active bool) (*models.ServiceArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if err := geo.ValidatePolygon(ring); err != nil {
		return nil, err
	}

	area := &models.ServiceArea{
		Name:        name,
		Coordinates: models.Coordinates(ring.Clone()),
		IsActive:    active,
	}
	if err := s.repo.Create(ctx, area); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"service_area_id": area.ID,
		"name":            area.Name,
		"vertices":        len(ring),
	}).Info("Service area created")
	return area, nil
}

func (s *ServiceAreaService) Get(ctx context.Context, id uuid.UUID) (*models.ServiceArea, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceAreaService) List(ctx context.Context, activeOnly bool) ([]models.ServiceArea, error) {
	return s.repo.List(ctx, repository.ServiceAreaFilter{ActiveOnly: activeOnly})
}

// ReplaceCoordinates swaps the whole ring of an existing area.
func (s *ServiceAreaService) ReplaceCoordinates(ctx context.Context, id uuid.UUID, ring geo.Polygon) (*models.ServiceArea, error) {
	if err := geo.ValidatePolygon(ring); err != nil {
		return nil, err
	}
	area, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	area.Coordinates = models.Coordinates(ring.Clone())
	if err := s.repo.Update(ctx, area); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"service_area_id": area.ID,
		"vertices":        len(ring),
	}).Info("Service area boundary replaced")
	return area, nil
}

// Update applies a rename and/or an activation toggle.
func (s *ServiceAreaService) Update(ctx context.Context, id uuid.UUID, patch ServiceAreaPatch) (*models.ServiceArea, error) {
	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
	}
	area, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		area.Name = name
	}
	if patch.IsActive != nil {
		area.IsActive = *patch.IsActive
	}
	if err := s.repo.Update(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

// SetActive toggles whether the area takes part in coverage checks.
func (s *ServiceAreaService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.ServiceArea, error) {
	return s.Update(ctx, id, ServiceAreaPatch{IsActive: &active})
}

func (s *ServiceAreaService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("service_area_id", id).Info("Service area deleted")
	return nil
}

// Upsert creates the area or, when one with the same name exists, replaces
// its ring and flag. Used by the seed command.
func (s *ServiceAreaService) Upsert(ctx context.Context, name string, ring geo.Polygon, active bool) (*models.ServiceArea, bool, error) {
	existing, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		area, err := s.Create(ctx, name, ring, active)
		return area, true, err
	case err != nil:
		return nil, false, err
	}
	if err := geo.ValidatePolygon(ring); err != nil {
		return nil, false, err
	}
	existing.Coordinates = models.Coordinates(ring.Clone())
	existing.IsActive = active
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
