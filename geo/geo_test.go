package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMiles(t *testing.T) {
	newYork := Point{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles := Point{Latitude: 34.0522, Longitude: -118.2437}

	d := DistanceMiles(newYork, losAngeles)
	assert.InDelta(t, 2445, d, 15)

	assert.Zero(t, DistanceMiles(newYork, newYork))
	assert.InDelta(t, DistanceMiles(newYork, losAngeles), DistanceMiles(losAngeles, newYork), 1e-9)
}

func TestDistanceMilesShortRange(t *testing.T) {
	// Two points in Manhattan roughly a mile and a half apart.
	timesSquare := Point{Latitude: 40.7580, Longitude: -73.9855}
	unionSquare := Point{Latitude: 40.7359, Longitude: -73.9911}
	assert.InDelta(t, 1.55, DistanceMiles(timesSquare, unionSquare), 0.2)
}

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		switch r.URL.Query().Get("q") {
		case "Paris":
			w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"}]`))
		case "Nowhere":
			w.Write([]byte(`[]`))
		case "broken":
			w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	point, err := client.Resolve(ctx, "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 48.8566, point.Latitude, 1e-6)
	assert.InDelta(t, 2.3522, point.Longitude, 1e-6)

	_, err = client.Resolve(ctx, "Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	var geoErr *GeocodingError
	_, err = client.Resolve(ctx, "broken")
	assert.ErrorAs(t, err, &geoErr)

	_, err = client.Resolve(ctx, "unavailable")
	assert.ErrorAs(t, err, &geoErr)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestResolveTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	var geoErr *GeocodingError
	_, err := client.Resolve(context.Background(), "anywhere")
	assert.ErrorAs(t, err, &geoErr)
}
