package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"buildersite/internal/geo"
	"buildersite/internal/geocoding"
	"buildersite/internal/models"
	"buildersite/internal/repository"
)

// --- Mock ServiceArea Repository ---

type mockAreaRepo struct {
	mock.Mock
}

func (m *mockAreaRepo) Create(ctx context.Context, area *models.ServiceArea) error {
	args := m.Called(ctx, area)
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockAreaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceArea), args.Error(1)
}

func (m *mockAreaRepo) GetByName(ctx context.Context, name string) (*models.ServiceArea, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceArea), args.Error(1)
}

func (m *mockAreaRepo) List(ctx context.Context, filter repository.ServiceAreaFilter) ([]models.ServiceArea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceArea), args.Error(1)
}

func (m *mockAreaRepo) Update(ctx context.Context, area *models.ServiceArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *mockAreaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Quote Repository ---

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote *models.QuoteRequest) error {
	args := m.Called(ctx, quote)
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

func (m *mockQuoteRepo) List(ctx context.Context, status string) ([]models.QuoteRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuoteRequest), args.Error(1)
}

func (m *mockQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

// --- Mock User Repository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Geocoder ---

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*geocoding.Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocoding.Result), args.Error(1)
}

// --- Test Helpers ---

var unitSquare = geo.Polygon{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 10}, {Lat: 10, Lon: 10}, {Lat: 10, Lon: 0}}

func square(minLat, minLon, size float64) geo.Polygon {
	return geo.Polygon{
		{Lat: minLat, Lon: minLon},
		{Lat: minLat, Lon: minLon + size},
		{Lat: minLat + size, Lon: minLon + size},
		{Lat: minLat + size, Lon: minLon},
	}
}

func newArea(name string, ring geo.Polygon, active bool, created time.Time) models.ServiceArea {
	return models.ServiceArea{
		ID:          uuid.New(),
		Name:        name,
		Coordinates: models.Coordinates(ring),
		IsActive:    active,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

var activeOnly = repository.ServiceAreaFilter{ActiveOnly: true}
