// Package repository persists models through gorm.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"buildersite/internal/models"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateName is returned when a service area name is taken.
	ErrDuplicateName = errors.New("service area name already exists")

	// ErrDuplicateEmail is returned when a user email is taken.
	ErrDuplicateEmail = errors.New("email already in use")
)

// ServiceAreaFilter narrows List.
type ServiceAreaFilter struct {
	ActiveOnly bool
}

// ServiceAreaRepository stores service areas. Each call reads or writes the
// full vertex list in one statement, so readers never see a partial ring.
type ServiceAreaRepository interface {
	// Create inserts a new area and assigns its ID.
	Create(ctx context.Context, area *models.ServiceArea) error

	// GetByID returns ErrNotFound when the area does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceArea, error)

	// GetByName returns ErrNotFound when no area has that name.
	GetByName(ctx context.Context, name string) (*models.ServiceArea, error)

	// List returns areas in storage order (creation time, then ID).
	List(ctx context.Context, filter ServiceAreaFilter) ([]models.ServiceArea, error)

	// Update writes every column of an existing area; ErrNotFound when the
	// row no longer exists.
	Update(ctx context.Context, area *models.ServiceArea) error

	// Delete removes the area; ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteRepository stores quote-builder submissions.
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.QuoteRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	// List returns newest first; an empty status lists everything.
	List(ctx context.Context, status string) ([]models.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error)
}

// UserRepository stores dashboard operators.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
