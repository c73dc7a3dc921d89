// Package geo resolves free-text locations to coordinates through a
// Nominatim-compatible geocoding service and computes great-circle distances.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound means the provider returned no match for the query. Callers
// treat it the same as a GeocodingError: the location is invalid.
var ErrNotFound = errors.New("location not found")

// GeocodingError wraps any provider or transport failure into a single kind.
type GeocodingError struct {
	Err error
}

func (e *GeocodingError) Error() string {
	return "geocoding failed: " + e.Err.Error()
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder turns location text into coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (Point, error)
}

// Client queries a Nominatim-style /search endpoint.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		UserAgent:  "DineDash",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Resolve(ctx context.Context, location string) (Point, error) {
	endpoint := c.BaseURL + "/search?" + url.Values{
		"q":      {location},
		"format": {"json"},
		"limit":  {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Point{}, &GeocodingError{Err: err}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Point{}, &GeocodingError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, &GeocodingError{Err: fmt.Errorf("provider returned status %d", resp.StatusCode)}
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, &GeocodingError{Err: err}
	}
	if len(results) == 0 {
		return Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, &GeocodingError{Err: err}
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, &GeocodingError{Err: err}
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}

const earthRadiusMiles = 3958.8

// DistanceMiles returns the haversine great-circle distance between two
// points in miles.
func DistanceMiles(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
