package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dinedash-api/config"
	"dinedash-api/geo"
	"dinedash-api/middleware"
	"dinedash-api/models"
	"dinedash-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubGeocoder resolves a fixed set of locations. "unreachable" simulates a
// provider outage.
type stubGeocoder struct {
	known map[string]geo.Point
}

func (s stubGeocoder) Resolve(_ context.Context, location string) (geo.Point, error) {
	if location == "unreachable" {
		return geo.Point{}, &geo.GeocodingError{Err: errors.New("provider down")}
	}
	point, ok := s.known[location]
	if !ok {
		return geo.Point{}, geo.ErrNotFound
	}
	return point, nil
}

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWTSecret = []byte("test-secret")
	config.Geo = stubGeocoder{known: map[string]geo.Point{
		"Times Square":  {Latitude: 40.7580, Longitude: -73.9855},
		"Union Square":  {Latitude: 40.7359, Longitude: -73.9911},
		"Central Park":  {Latitude: 40.7812, Longitude: -73.9665},
		"Staten Island": {Latitude: 40.5795, Longitude: -74.1502},
	}}

	// A shared in-memory database named after the test keeps every
	// connection in the pool on the same data.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	config.OpenDB(dsn)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func f64(v float64) *float64 { return &v }

func newUser(t *testing.T, email string, userType models.UserType) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: email, PasswordHash: string(hash), UserType: userType}
	require.NoError(t, config.DB.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// newCustomer creates a regular user with an optional resolved location.
func newCustomer(t *testing.T, email string, lat, lon *float64) (*models.User, string) {
	t.Helper()
	user := newUser(t, email, models.TypeRegular)
	location := ""
	if lat != nil {
		location = "somewhere"
	}
	require.NoError(t, config.DB.Create(&models.CustomerInfo{
		UserID:    user.ID,
		FirstName: "Test",
		LastName:  "Customer",
		Location:  location,
		Latitude:  lat,
		Longitude: lon,
	}).Error)
	return user, tokenFor(t, user)
}

// newRestaurant creates a restaurant user with its restaurant at the given
// coordinates.
func newRestaurant(t *testing.T, email, name string, lat, lon float64) (*models.Restaurant, string) {
	t.Helper()
	user := newUser(t, email, models.TypeRestaurant)
	restaurant := &models.Restaurant{
		UserID:    user.ID,
		Name:      name,
		Location:  "test address",
		Latitude:  f64(lat),
		Longitude: f64(lon),
	}
	require.NoError(t, config.DB.Create(restaurant).Error)
	return restaurant, tokenFor(t, user)
}

// newContractor creates a delivery user with a resolved location.
func newContractor(t *testing.T, email string, lat, lon float64) (*models.DeliveryContractorInfo, string) {
	t.Helper()
	user := newUser(t, email, models.TypeDelivery)
	info := &models.DeliveryContractorInfo{
		UserID:    user.ID,
		FirstName: "Test",
		LastName:  "Contractor",
		Location:  "contractor base",
		Latitude:  f64(lat),
		Longitude: f64(lon),
	}
	require.NoError(t, config.DB.Create(info).Error)
	return info, tokenFor(t, user)
}

func newMenuItem(t *testing.T, restaurantID uint, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price}
	require.NoError(t, config.DB.Create(item).Error)
	return item
}

func openDaily(t *testing.T, restaurantID uint, openMin, closeMin int) {
	t.Helper()
	for day := 0; day < 7; day++ {
		require.NoError(t, config.DB.Create(&models.DayHours{
			RestaurantID: restaurantID,
			Weekday:      day,
			OpenMinutes:  openMin,
			CloseMinutes: closeMin,
		}).Error)
	}
}

// nextWeekday returns the next future date falling on the given weekday.
func nextWeekday(day time.Weekday) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func itoa(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
