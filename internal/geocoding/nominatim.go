package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"buildersite/internal/metrics"
)

const providerNominatim = "nominatim"

// NominatimConfig configures the OpenStreetMap Nominatim client.
type NominatimConfig struct {
	BaseURL      string
	UserAgent    string
	Email        string
	CountryCodes string
	// HTTPTimeout bounds a single request independently of the caller's context.
	HTTPTimeout time.Duration
	// RatePerSecond throttles outbound calls; the public instance allows 1/s.
	RatePerSecond float64

	BreakerTimeout      time.Duration
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
}

// DefaultNominatimConfig returns settings for the public OSM instance.
func DefaultNominatimConfig() NominatimConfig {
	return NominatimConfig{
		BaseURL:             "https://nominatim.openstreetmap.org",
		UserAgent:           "buildersite/1.0",
		HTTPTimeout:         5 * time.Second,
		RatePerSecond:       1,
		BreakerTimeout:      30 * time.Second,
		BreakerMinRequests:  5,
		BreakerFailureRatio: 0.5,
	}
}

// Nominatim geocodes through the Nominatim search API.
type Nominatim struct {
	cfg        NominatimConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*Result]
}

// NewNominatim builds a client. A nil httpClient gets one with cfg.HTTPTimeout.
func NewNominatim(cfg NominatimConfig, httpClient *http.Client) *Nominatim {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	name := providerNominatim
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.BreakerFailureRatio
		},
		// A miss is a valid answer and a cancelled caller says nothing about
		// the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Geocoder circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return &Nominatim{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    gobreaker.NewCircuitBreaker[*Result](settings),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode returns the best match for address.
func (n *Nominatim) Geocode(ctx context.Context, address string) (*Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	res, err := n.breaker.Execute(func() (*Result, error) {
		return n.search(ctx, address)
	})
	switch {
	case err == nil:
		metrics.GeocodeRequestsTotal.WithLabelValues(providerNominatim, "ok").Inc()
		return res, nil
	case errors.Is(err, ErrNotFound):
		metrics.GeocodeRequestsTotal.WithLabelValues(providerNominatim, "not_found").Inc()
		return nil, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.GeocodeRequestsTotal.WithLabelValues(providerNominatim, "circuit_open").Inc()
		return nil, &ServiceError{Provider: providerNominatim, Err: err}
	default:
		metrics.GeocodeRequestsTotal.WithLabelValues(providerNominatim, "error").Inc()
		return nil, err
	}
}

func (n *Nominatim) search(ctx context.Context, address string) (*Result, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else if _, ok := ctx.Deadline(); ok {
			// Wait gives up early when the next token is due after the deadline.
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, &ServiceError{Provider: providerNominatim, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	if n.cfg.CountryCodes != "" {
		q.Set("countrycodes", n.cfg.CountryCodes)
	}
	if n.cfg.Email != "" {
		q.Set("email", n.cfg.Email)
	}
	u := strings.TrimRight(n.cfg.BaseURL, "/") + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &ServiceError{Provider: providerNominatim, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", n.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, &ServiceError{Provider: providerNominatim, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ServiceError{
			Provider: providerNominatim,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &ServiceError{Provider: providerNominatim, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(places) == 0 {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, &ServiceError{Provider: providerNominatim, Err: fmt.Errorf("parsing lat %q: %w", places[0].Lat, err)}
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, &ServiceError{Provider: providerNominatim, Err: fmt.Errorf("parsing lon %q: %w", places[0].Lon, err)}
	}

	return &Result{Latitude: lat, Longitude: lon, DisplayName: places[0].DisplayName}, nil
}

// BreakerState exposes the breaker for health reporting.
func (n *Nominatim) BreakerState() gobreaker.State {
	return n.breaker.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
