package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dinedash-api/config"
	"dinedash-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchResults(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	raw := decode(t, w)["restaurants"].([]interface{})
	results := make([]map[string]interface{}, 0, len(raw))
	for _, row := range raw {
		results = append(results, row.(map[string]interface{}))
	}
	return results
}

func resultNames(results []map[string]interface{}) []string {
	names := make([]string, 0, len(results))
	for _, row := range results {
		names = append(names, row["name"].(string))
	}
	return names
}

func addReview(t *testing.T, restaurantID uint, rating int) {
	t.Helper()
	user := newUser(t, uniqueEmail(t, "reviewer"), models.TypeRegular)
	require.NoError(t, config.DB.Create(&models.RestaurantReview{
		UserID:       user.ID,
		RestaurantID: restaurantID,
		Rating:       rating,
		Description:  "fine",
	}).Error)
}

func TestSearchQueryCollapsesWhitespace(t *testing.T) {
	r := setupTest(t)
	newRestaurant(t, "one@example.com", "Pizza Place", 40.7580, -73.9855)
	newRestaurant(t, "two@example.com", "Burger Barn", 40.7359, -73.9911)

	// Double-spaced query still matches the single-spaced name.
	w := do(r, http.MethodGet, "/api/restaurants?query=pizza%20%20place", "", nil)
	results := searchResults(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, "Pizza Place", results[0]["name"])
}

func TestSearchMatchesDescription(t *testing.T) {
	r := setupTest(t)
	tavern, _ := newRestaurant(t, "one@example.com", "The Tavern", 40.7580, -73.9855)
	tavern.Description = "Wood-fired PIZZA and craft beer"
	require.NoError(t, config.DB.Save(tavern).Error)
	newRestaurant(t, "two@example.com", "Burger Barn", 40.7359, -73.9911)

	w := do(r, http.MethodGet, "/api/restaurants?query=pizza", "", nil)
	results := searchResults(t, w)
	require.Len(t, results, 1)
	assert.Equal(t, "The Tavern", results[0]["name"])
}

func TestSearchNameOrdering(t *testing.T) {
	r := setupTest(t)
	newRestaurant(t, "one@example.com", "Zucchini", 40.7580, -73.9855)
	newRestaurant(t, "two@example.com", "Arepas", 40.7359, -73.9911)

	w := do(r, http.MethodGet, "/api/restaurants", "", nil)
	assert.Equal(t, []string{"Arepas", "Zucchini"}, resultNames(searchResults(t, w)))

	w = do(r, http.MethodGet, "/api/restaurants?order_by=-name", "", nil)
	assert.Equal(t, []string{"Zucchini", "Arepas"}, resultNames(searchResults(t, w)))
}

func TestSearchRatingSortsSkipUnreviewed(t *testing.T) {
	r := setupTest(t)
	good, _ := newRestaurant(t, "one@example.com", "Good Eats", 40.7580, -73.9855)
	okay, _ := newRestaurant(t, "two@example.com", "Okay Eats", 40.7359, -73.9911)
	newRestaurant(t, "three@example.com", "Unrated Eats", 40.7812, -73.9665)

	addReview(t, good.ID, 5)
	addReview(t, good.ID, 4)
	addReview(t, okay.ID, 2)

	w := do(r, http.MethodGet, "/api/restaurants?order_by=highest_rating", "", nil)
	results := searchResults(t, w)
	// Restaurants with no reviews are left out of rating sorts entirely.
	require.Equal(t, []string{"Good Eats", "Okay Eats"}, resultNames(results))
	assert.InDelta(t, 4.5, results[0]["average_rating"].(float64), 1e-9)
	assert.Equal(t, 2.0, results[0]["review_count"])

	w = do(r, http.MethodGet, "/api/restaurants?order_by=lowest_rating", "", nil)
	assert.Equal(t, []string{"Okay Eats", "Good Eats"}, resultNames(searchResults(t, w)))

	// The default listing still shows everyone, rating left null.
	w = do(r, http.MethodGet, "/api/restaurants", "", nil)
	results = searchResults(t, w)
	require.Len(t, results, 3)
	assert.Nil(t, results[2]["average_rating"])
}

func TestSearchDistanceForSignedInCustomer(t *testing.T) {
	r := setupTest(t)
	newRestaurant(t, "one@example.com", "Near Place", 40.7359, -73.9911)
	newRestaurant(t, "two@example.com", "Far Place", 40.5795, -74.1502)
	_, token := newCustomer(t, "customer@example.com", f64(40.7580), f64(-73.9855))

	// Distance rides along on any sort when the requester has a location.
	w := do(r, http.MethodGet, "/api/restaurants", token, nil)
	results := searchResults(t, w)
	require.Len(t, results, 2)
	for _, row := range results {
		assert.NotNil(t, row["distance_away"])
	}

	w = do(r, http.MethodGet, "/api/restaurants?order_by=lowest_distance", token, nil)
	assert.Equal(t, []string{"Near Place", "Far Place"}, resultNames(searchResults(t, w)))
}

func TestSearchDistanceSortWithoutLocationFallsBack(t *testing.T) {
	r := setupTest(t)
	newRestaurant(t, "one@example.com", "Zebra Cafe", 40.7359, -73.9911)
	newRestaurant(t, "two@example.com", "Alpha Diner", 40.5795, -74.1502)
	_, token := newCustomer(t, "customer@example.com", nil, nil)

	// No saved location: lowest_distance quietly degrades to name order and
	// no distances are attached.
	for _, tok := range []string{"", token} {
		w := do(r, http.MethodGet, "/api/restaurants?order_by=lowest_distance", tok, nil)
		results := searchResults(t, w)
		require.Equal(t, []string{"Alpha Diner", "Zebra Cafe"}, resultNames(results))
		for _, row := range results {
			_, present := row["distance_away"]
			assert.False(t, present)
		}
	}
}
