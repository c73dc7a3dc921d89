package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"dinedash-api/config"
	"dinedash-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRestaurantPublicView(t *testing.T) {
	r := setupTest(t)
	restaurant, _ := newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)
	newMenuItem(t, restaurant.ID, "Burger", 5)
	require.NoError(t, config.DB.Create(&models.DayHours{
		RestaurantID: restaurant.ID,
		Weekday:      int(time.Monday),
		OpenMinutes:  9 * 60,
		CloseMinutes: 17*60 + 30,
	}).Error)
	addReview(t, restaurant.ID, 4)

	w := do(r, http.MethodGet, "/api/restaurants/"+itoa(restaurant.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)

	hours := resp["weekly_hours"].(map[string]interface{})
	assert.Equal(t, "09:00 to 17:30", hours["monday"])
	assert.Equal(t, "closed", hours["tuesday"])
	assert.Equal(t, 4.0, resp["average_rating"])
	assert.Equal(t, 1.0, resp["review_count"])

	w = do(r, http.MethodGet, "/api/restaurants/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRestaurantHours(t *testing.T) {
	r := setupTest(t)
	restaurant, ownerToken := newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)
	openDaily(t, restaurant.ID, 9*60, 17*60)

	w := do(r, http.MethodPut, "/api/restaurant/hours", ownerToken, map[string]interface{}{
		"hours": map[string]interface{}{
			"monday": map[string]string{"open": "10:00", "close": "20:00"},
			"friday": map[string]string{"open": "10:00", "close": "23:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The schedule is replaced wholesale: omitted days become closed.
	var rows []models.DayHours
	config.DB.Where("restaurant_id = ?", restaurant.ID).Order("weekday asc").Find(&rows)
	require.Len(t, rows, 2)
	assert.Equal(t, int(time.Monday), rows[0].Weekday)
	assert.Equal(t, 10*60, rows[0].OpenMinutes)
	assert.Equal(t, int(time.Friday), rows[1].Weekday)
	assert.Equal(t, 23*60, rows[1].CloseMinutes)
}

func TestUpdateRestaurantHoursValidation(t *testing.T) {
	r := setupTest(t)
	newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)
	_, ownerToken := newRestaurant(t, "owner2@example.com", "Other", 40.7359, -73.9911)

	cases := []map[string]interface{}{
		// Open without close.
		{"monday": map[string]interface{}{"open": "10:00"}},
		// Not a weekday.
		{"someday": map[string]string{"open": "10:00", "close": "20:00"}},
		// Open at or after close.
		{"monday": map[string]string{"open": "20:00", "close": "10:00"}},
		{"monday": map[string]string{"open": "10:00", "close": "10:00"}},
		// Unparseable clock.
		{"monday": map[string]string{"open": "10am", "close": "20:00"}},
	}
	for _, hours := range cases {
		w := do(r, http.MethodPut, "/api/restaurant/hours", ownerToken,
			map[string]interface{}{"hours": hours})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestUpdateRestaurantInfo(t *testing.T) {
	r := setupTest(t)
	restaurant, ownerToken := newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)

	w := do(r, http.MethodPut, "/api/restaurant/info", ownerToken, map[string]interface{}{
		"description": "New description",
		"location":    "Central Park",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Restaurant
	require.NoError(t, config.DB.First(&reloaded, restaurant.ID).Error)
	assert.Equal(t, "New description", reloaded.Description)
	require.NotNil(t, reloaded.Latitude)
	assert.InDelta(t, 40.7812, *reloaded.Latitude, 1e-6)

	// Blank location is refused, unknown location fails the lookup.
	w = do(r, http.MethodPut, "/api/restaurant/info", ownerToken,
		map[string]interface{}{"location": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/restaurant/info", ownerToken,
		map[string]interface{}{"location": "Atlantis"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuItemCRUD(t *testing.T) {
	r := setupTest(t)
	_, ownerToken := newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)
	_, strangerToken := newRestaurant(t, "stranger@example.com", "Other", 40.7359, -73.9911)

	w := do(r, http.MethodPost, "/api/restaurant/menu", ownerToken,
		map[string]interface{}{"name": "Burger", "description": "beefy", "price": 5.5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := uint(decode(t, w)["item"].(map[string]interface{})["id"].(float64))

	w = do(r, http.MethodPost, "/api/restaurant/menu", ownerToken,
		map[string]interface{}{"name": "Freebie", "price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Ownership is enforced on edit and delete.
	w = do(r, http.MethodPut, "/api/restaurant/menu/"+itoa(itemID), strangerToken,
		map[string]interface{}{"name": "Hijacked", "price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/api/restaurant/menu/"+itoa(itemID), ownerToken,
		map[string]interface{}{"name": "Double Burger", "price": 7.5})
	require.Equal(t, http.StatusOK, w.Code)

	var item models.MenuItem
	require.NoError(t, config.DB.First(&item, itemID).Error)
	assert.Equal(t, "Double Burger", item.Name)
	assert.Equal(t, 7.5, item.Price)

	w = do(r, http.MethodDelete, "/api/restaurant/menu/"+itoa(itemID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Error(t, config.DB.First(&item, itemID).Error)
}

func TestReviewLifecycle(t *testing.T) {
	r := setupTest(t)
	restaurant, _ := newRestaurant(t, "owner@example.com", "Testaurant", 40.7580, -73.9855)
	_, token := newCustomer(t, "customer@example.com", nil, nil)
	_, otherToken := newCustomer(t, "other@example.com", nil, nil)

	path := "/api/customer/restaurants/" + itoa(restaurant.ID) + "/reviews"

	w := do(r, http.MethodPost, path, token, map[string]interface{}{"rating": 4, "description": "solid"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One review per customer per restaurant.
	w = do(r, http.MethodPost, path, token, map[string]interface{}{"rating": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, path, token, map[string]interface{}{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, path, token, map[string]interface{}{"rating": 5, "description": "even better"})
	require.Equal(t, http.StatusOK, w.Code)

	// Someone without a review here has nothing to edit or delete.
	w = do(r, http.MethodPut, path, otherToken, map[string]interface{}{"rating": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The public listing reflects the edit.
	w = do(r, http.MethodGet, "/api/restaurants/"+itoa(restaurant.ID)+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.Equal(t, 1.0, resp["count"])
	review := resp["reviews"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 5.0, review["rating"])

	w = do(r, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.RestaurantReview{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCustomerDetailsLocationHandling(t *testing.T) {
	r := setupTest(t)
	user, token := newCustomer(t, "customer@example.com", f64(40.7580), f64(-73.9855))

	// Blanking the location clears the coordinates.
	w := do(r, http.MethodPut, "/api/customer/details", token,
		map[string]interface{}{"first_name": "Test", "last_name": "Customer", "location": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var info models.CustomerInfo
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&info).Error)
	assert.Nil(t, info.Latitude)
	assert.Nil(t, info.Longitude)

	w = do(r, http.MethodPut, "/api/customer/details", token,
		map[string]interface{}{"first_name": "Test", "last_name": "Customer", "location": "Union Square"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&info).Error)
	require.NotNil(t, info.Latitude)
	assert.InDelta(t, 40.7359, *info.Latitude, 1e-6)
}
