package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"buildersite/internal/geo"
	"buildersite/internal/metrics"
	"buildersite/internal/models"
	"buildersite/internal/repository"
)

// QuoteInput is what the quote-builder wizard submits on its last step.
// When Lat and Lon are both set the address is not geocoded again; the
// wizard already resolved it on the address step.
type QuoteInput struct {
	Name      string   `validate:"required,max=200"`
	Email     string   `validate:"required,email,max=320"`
	Phone     string   `validate:"max=40"`
	Address   string   `validate:"required,max=500"`
	Lat       *float64 `validate:"required_with=Lon,omitempty,latitude"`
	Lon       *float64 `validate:"required_with=Lat,omitempty,longitude"`
	Floorplan string   `validate:"max=200"`
	Facade    string   `validate:"max=200"`
	Options   []string `validate:"max=50,dive,max=200"`
	Message   string   `validate:"max=4000"`
}

// QuoteService accepts quote requests from inside the service areas only.
type QuoteService struct {
	quotes   repository.QuoteRepository
	coverage *CoverageService
}

func NewQuoteService(quotes repository.QuoteRepository, coverage *CoverageService) *QuoteService {
	return &QuoteService{quotes: quotes, coverage: coverage}
}

// Submit validates the request, checks coverage and stores the lead.
func (s *QuoteService) Submit(ctx context.Context, in QuoteInput) (*models.QuoteRequest, error) {
	if err := validateQuote(&in); err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var (
		cov *Coverage
		err error
	)
	if in.Lat != nil && in.Lon != nil {
		cov, err = s.coverage.CheckPoint(ctx, geo.Point{Lat: *in.Lat, Lon: *in.Lon})
	} else {
		cov, err = s.coverage.CheckAddress(ctx, in.Address)
	}
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if !cov.Served {
		metrics.QuoteRequestsTotal.WithLabelValues("outside_area").Inc()
		logrus.WithFields(logrus.Fields{
			"lat": cov.Point.Lat,
			"lon": cov.Point.Lon,
		}).Info("Quote request outside service areas")
		return nil, ErrOutsideServiceArea
	}

	quote := &models.QuoteRequest{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Latitude:       cov.Point.Lat,
		Longitude:      cov.Point.Lon,
		ServiceAreaIDs: models.StringList(cov.AreaIDs),
		Floorplan:      in.Floorplan,
		Facade:         in.Facade,
		Options:        models.StringList(in.Options),
		Message:        in.Message,
		Status:         models.QuoteStatusNew,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	metrics.QuoteRequestsTotal.WithLabelValues("accepted").Inc()
	logrus.WithFields(logrus.Fields{
		"quote_id":         quote.ID,
		"service_area_ids": cov.AreaIDs,
	}).Info("Quote request accepted")
	return quote, nil
}

// Get is the shared-quote lookup.
func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.quotes.GetByID(ctx, id)
}

func (s *QuoteService) List(ctx context.Context, status string) ([]models.QuoteRequest, error) {
	if status != "" && !models.ValidQuoteStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.quotes.List(ctx, status)
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error) {
	if !models.ValidQuoteStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.quotes.UpdateStatus(ctx, id, status)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateQuote(in *QuoteInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: strings.ToLower(fe.Field()), Message: msgForTag(fe)}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return "lat and lon must be given together"
	case "email":
		return "must be a valid email address"
	case "latitude":
		return "must be within [-90, 90]"
	case "longitude":
		return "must be within [-180, 180]"
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}
