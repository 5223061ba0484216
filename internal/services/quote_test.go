package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"buildersite/internal/geocoding"
	"buildersite/internal/models"
	"buildersite/internal/repository"
)

func floatPtr(f float64) *float64 { return &f }

func newQuoteFixture(t *testing.T) (*QuoteService, *mockQuoteRepo, *mockGeocoder, models.ServiceArea) {
	t.Helper()
	area := newArea("Central", unitSquare, true, time.Now())
	areas := new(mockAreaRepo)
	areas.On("List", mock.Anything, activeOnly).Return([]models.ServiceArea{area}, nil)
	gc := new(mockGeocoder)
	quotes := new(mockQuoteRepo)
	return NewQuoteService(quotes, NewCoverageService(areas, gc, time.Second)), quotes, gc, area
}

func validInput() QuoteInput {
	return QuoteInput{
		Name:      "Sam Builder",
		Email:     "sam@example.com",
		Address:   "1 Main St",
		Floorplan: "The Aspen",
		Options:   []string{"alfresco"},
	}
}

func TestQuoteService_Submit_WithCoordinates(t *testing.T) {
	svc, quotes, gc, area := newQuoteFixture(t)
	quotes.On("Create", mock.Anything, mock.AnythingOfType("*models.QuoteRequest")).Return(nil)

	in := validInput()
	in.Lat, in.Lon = floatPtr(5), floatPtr(5)
	q, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, q.ID)
	assert.Equal(t, models.QuoteStatusNew, q.Status)
	assert.Equal(t, models.StringList{area.AreaID()}, q.ServiceAreaIDs)
	assert.Equal(t, 5.0, q.Latitude)
	gc.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestQuoteService_Submit_GeocodesAddress(t *testing.T) {
	svc, quotes, gc, _ := newQuoteFixture(t)
	quotes.On("Create", mock.Anything, mock.Anything).Return(nil)
	gc.On("Geocode", mock.Anything, "1 Main St").Return(&geocoding.Result{Latitude: 2, Longitude: 3}, nil)

	q, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 2.0, q.Latitude)
	assert.Equal(t, 3.0, q.Longitude)
	gc.AssertExpectations(t)
}

func TestQuoteService_Submit_OutsideArea(t *testing.T) {
	svc, quotes, _, _ := newQuoteFixture(t)

	in := validInput()
	in.Lat, in.Lon = floatPtr(40), floatPtr(40)
	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrOutsideServiceArea)
	quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuoteService_Submit_GeocodeNotFound(t *testing.T) {
	svc, quotes, gc, _ := newQuoteFixture(t)
	gc.On("Geocode", mock.Anything, "1 Main St").Return(nil, geocoding.ErrNotFound)

	_, err := svc.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, geocoding.ErrNotFound)
	quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuoteService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*QuoteInput)
		wantField string
	}{
		{"missing name", func(in *QuoteInput) { in.Name = "   " }, "name"},
		{"bad email", func(in *QuoteInput) { in.Email = "not-an-email" }, "email"},
		{"missing address", func(in *QuoteInput) { in.Address = "" }, "address"},
		{"lat without lon", func(in *QuoteInput) { in.Lat = floatPtr(1) }, "lon"},
		{"lat out of range", func(in *QuoteInput) { in.Lat, in.Lon = floatPtr(100), floatPtr(1) }, "lat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, quotes, _, _ := newQuoteFixture(t)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Submit(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			quotes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestQuoteService_Status(t *testing.T) {
	svc, quotes, _, _ := newQuoteFixture(t)
	id := uuid.New()
	quotes.On("UpdateStatus", mock.Anything, id, models.QuoteStatusContacted).
		Return(&models.QuoteRequest{ID: id, Status: models.QuoteStatusContacted}, nil)
	quotes.On("List", mock.Anything, models.QuoteStatusNew).Return([]models.QuoteRequest{}, nil)
	quotes.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	q, err := svc.UpdateStatus(context.Background(), id, models.QuoteStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusContacted, q.Status)

	_, err = svc.UpdateStatus(context.Background(), id, "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.List(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	list, err := svc.List(context.Background(), models.QuoteStatusNew)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
