package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"buildersite/internal/models"
)

type serviceAreaRepository struct {
	db *gorm.DB
}

// NewServiceAreaRepository returns a gorm-backed ServiceAreaRepository.
func NewServiceAreaRepository(db *gorm.DB) ServiceAreaRepository {
	return &serviceAreaRepository{db: db}
}

func (r *serviceAreaRepository) Create(ctx context.Context, area *models.ServiceArea) error {
	if err := r.db.WithContext(ctx).Create(area).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("create service area: %w", err)
	}
	return nil
}

func (r *serviceAreaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceArea, error) {
	var area models.ServiceArea
	if err := r.db.WithContext(ctx).First(&area, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service area: %w", err)
	}
	return &area, nil
}

func (r *serviceAreaRepository) GetByName(ctx context.Context, name string) (*models.ServiceArea, error) {
	var area models.ServiceArea
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service area by name: %w", err)
	}
	return &area, nil
}

func (r *serviceAreaRepository) List(ctx context.Context, filter ServiceAreaFilter) ([]models.ServiceArea, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	areas := []models.ServiceArea{}
	if err := q.Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("list service areas: %w", err)
	}
	return areas, nil
}

// Update never inserts: a row deleted since it was read stays deleted.
func (r *serviceAreaRepository) Update(ctx context.Context, area *models.ServiceArea) error {
	if area.ID == uuid.Nil {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(area).Select("*").Omit("id", "created_at").Updates(area)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update service area: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *serviceAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ServiceArea{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete service area: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
