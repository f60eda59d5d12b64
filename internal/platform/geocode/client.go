package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/placeshare/places-api/internal/config"
	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/platform/logger"
)

// Upstream status values in the geocoding response body.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client is a Geocoder backed by a Google-style geocoding HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *slog.Logger
}

// NewClient creates a geocoding client from configuration.
func NewClient(cfg config.GeocodeConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		log:        log.With(slog.String("component", "geocoder")),
	}
}

var _ Geocoder = (*Client)(nil)

// geocodeResponse is the subset of the upstream response we decode.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve implements Geocoder.
func (c *Client) Resolve(ctx context.Context, address string) (domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, c.log)

	reqURL := fmt.Sprintf("%s?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to build geocoding request", slog.String("error", err.Error()))
		return domain.Location{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Could not resolve the address, please try again.",
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("geocoding request failed", slog.String("error", err.Error()))
		return domain.Location{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Could not resolve the address, please try again.",
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Error("geocoding service returned non-OK status",
			slog.Int("status_code", resp.StatusCode))
		return domain.Location{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Could not resolve the address, please try again.",
		}
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Error("failed to decode geocoding response", slog.String("error", err.Error()))
		return domain.Location{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Could not resolve the address, please try again.",
		}
	}

	if body.Status == statusZeroResults || len(body.Results) == 0 {
		log.Debug("no geocoding results for address")
		return domain.Location{}, &Error{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "Could not find location for the specified address.",
		}
	}

	if body.Status != statusOK {
		log.Error("geocoding service reported failure", slog.String("status", body.Status))
		return domain.Location{}, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Could not resolve the address, please try again.",
		}
	}

	loc := body.Results[0].Geometry.Location
	return domain.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
