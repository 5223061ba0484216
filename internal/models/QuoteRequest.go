package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuoteStatusNew       = "new"
	QuoteStatusContacted = "contacted"
	QuoteStatusClosed    = "closed"
)

// ValidQuoteStatus reports whether s is a known lead status.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusNew, QuoteStatusContacted, QuoteStatusClosed:
		return true
	}
	return false
}

// QuoteRequest is a quote-builder submission. Its ID doubles as the share
// link, so it is a random UUID rather than a sequence.
type QuoteRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"not null;index" json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `gorm:"not null" json:"address"`
	Latitude       float64    `json:"lat"`
	Longitude      float64    `json:"lon"`
	ServiceAreaIDs StringList `json:"service_area_ids"`
	Floorplan      string     `json:"floorplan"`
	Facade         string     `json:"facade"`
	Options        StringList `json:"options"`
	Message        string     `json:"message"`
	Status         string     `gorm:"not null;index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (q *QuoteRequest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuoteStatusNew
	}
	return nil
}
