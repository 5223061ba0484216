package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"buildersite/internal/geo"
)

// ServiceArea is a named region the business builds in.
// Coordinates are kept in drawing order; Geometry is the same ring as WKB,
// derived on every save for GIS tooling.
type ServiceArea struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"not null;uniqueIndex" json:"name"`
	Coordinates Coordinates `gorm:"not null" json:"coordinates"`
	Geometry    []byte      `gorm:"type:bytea" json:"-"`
	IsActive    bool        `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (a *ServiceArea) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *ServiceArea) BeforeSave(tx *gorm.DB) error {
	wkb, err := geo.EncodeWKB(geo.Polygon(a.Coordinates))
	if err != nil {
		return err
	}
	a.Geometry = wkb
	return nil
}

func (a ServiceArea) AreaID() string           { return a.ID.String() }
func (a ServiceArea) AreaPolygon() geo.Polygon { return geo.Polygon(a.Coordinates) }
func (a ServiceArea) Active() bool             { return a.IsActive }
