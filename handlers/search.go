package handlers

import (
	"net/http"
	"sort"
	"strings"

	"dinedash-api/config"
	"dinedash-api/geo"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

// RestaurantSearchResult is one row of the search listing. AverageRating is
// nil when the restaurant has no reviews; DistanceAway is set only when the
// requester has a saved location.
type RestaurantSearchResult struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
	DistanceAway  *float64 `json:"distance_away,omitempty"`
}

// requesterCoordinates returns the saved location of a signed-in regular
// user, if any.
func requesterCoordinates(c *gin.Context) *geo.Point {
	typeVal, exists := c.Get("userType")
	if !exists || models.UserType(typeVal.(string)) != models.TypeRegular {
		return nil
	}
	userID, _ := c.Get("userID")
	var info models.CustomerInfo
	if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err != nil {
		return nil
	}
	if !info.HasCoordinates() {
		return nil
	}
	return &geo.Point{Latitude: *info.Latitude, Longitude: *info.Longitude}
}

// collapseSpaces trims the query and collapses interior whitespace runs into
// single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SearchRestaurants implements restaurant discovery: free-text filter over
// name and description, rating aggregation, and optional distance sort
// relative to the requester's saved location.
func SearchRestaurants(c *gin.Context) {
	orderBy := c.Query("order_by")

	query := config.DB.Table("restaurants").
		Select(`restaurants.id, restaurants.name, restaurants.description,
			restaurants.latitude, restaurants.longitude,
			AVG(restaurant_reviews.rating) AS average_rating,
			COUNT(restaurant_reviews.id) AS review_count`).
		Joins("LEFT JOIN restaurant_reviews ON restaurant_reviews.restaurant_id = restaurants.id").
		Group("restaurants.id")

	if q := collapseSpaces(c.Query("query")); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(restaurants.name) LIKE ? OR LOWER(restaurants.description) LIKE ?",
			pattern, pattern)
	}

	switch orderBy {
	case "-name":
		query = query.Order("restaurants.name DESC")
	case "highest_rating":
		// Rating sorts only rank restaurants that have reviews.
		query = query.Having("COUNT(restaurant_reviews.id) > 0").
			Order("average_rating DESC, restaurants.name ASC")
	case "lowest_rating":
		query = query.Having("COUNT(restaurant_reviews.id) > 0").
			Order("average_rating ASC, restaurants.name ASC")
	default:
		// Includes lowest_distance, which is re-sorted in memory below.
		query = query.Order("restaurants.name ASC")
	}

	var results []RestaurantSearchResult
	if err := query.Scan(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search restaurants"})
		return
	}

	coords := requesterCoordinates(c)
	if coords != nil {
		for i := range results {
			r := &results[i]
			if r.Latitude == nil || r.Longitude == nil {
				continue
			}
			d := geo.DistanceMiles(*coords, geo.Point{Latitude: *r.Latitude, Longitude: *r.Longitude})
			r.DistanceAway = &d
		}
	}

	// Distance sort needs requester coordinates; without them it silently
	// stays in name order.
	if orderBy == "lowest_distance" && coords != nil {
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].DistanceAway, results[j].DistanceAway
			if di == nil || dj == nil {
				return dj == nil && di != nil
			}
			return *di < *dj
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(results),
		"restaurants": results,
	})
}
