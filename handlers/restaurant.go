package handlers

import (
	"net/http"
	"strings"
	"time"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ownedRestaurant loads the restaurant of the signed-in restaurant user.
func ownedRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("Hours").Where("user_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

// GetRestaurant returns a restaurant's public detail: info, menu, per-day
// hours and average review rating.
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("Hours").Preload("MenuItems").
		First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	hours := make(map[string]string, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if h := restaurant.HoursFor(day); h != nil {
			hours[weekdayNames[day]] = models.FormatClock(h.OpenMinutes) + " to " + models.FormatClock(h.CloseMinutes)
		} else {
			hours[weekdayNames[day]] = "closed"
		}
	}

	var avg struct {
		AverageRating *float64
		ReviewCount   int
	}
	config.DB.Model(&models.RestaurantReview{}).
		Select("AVG(rating) AS average_rating, COUNT(id) AS review_count").
		Where("restaurant_id = ?", restaurant.ID).
		Scan(&avg)

	c.JSON(http.StatusOK, gin.H{
		"restaurant":     restaurant,
		"weekly_hours":   hours,
		"average_rating": avg.AverageRating,
		"review_count":   avg.ReviewCount,
	})
}

type UpdateRestaurantRequest struct {
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

// UpdateRestaurantInfo edits description and location. Coordinates are
// recomputed only when the location text changed.
func UpdateRestaurantInfo(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.Location != nil {
		location := strings.TrimSpace(*req.Location)
		if location == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You need to include a valid location"})
			return
		}
		if location != restaurant.Location {
			lat, lon, ok := resolveLocation(c, location)
			if !ok {
				return
			}
			restaurant.Location = location
			restaurant.Latitude, restaurant.Longitude = lat, lon
		}
	}

	if err := config.DB.Save(restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// DayHoursRequest carries one weekday's window. Open and Close must be both
// set or both absent (closed that day).
type DayHoursRequest struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

type UpdateHoursRequest struct {
	// Keyed by lowercase weekday name; days omitted entirely are closed.
	Hours map[string]DayHoursRequest `json:"hours" binding:"required"`
}

// UpdateRestaurantHours replaces the weekly schedule.
func UpdateRestaurantHours(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekdayIndex := make(map[string]int, 7)
	for i, name := range weekdayNames {
		weekdayIndex[name] = i
	}

	var rows []models.DayHours
	for day, window := range req.Hours {
		idx, known := weekdayIndex[strings.ToLower(day)]
		if !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown weekday: " + day})
			return
		}
		if (window.Open == nil) != (window.Close == nil) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "If you entered an opening time for a day of the week, make sure to also specify a closing time for said day",
			})
			return
		}
		if window.Open == nil {
			continue
		}
		openMin, err := models.ParseClock(*window.Open)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		closeMin, err := models.ParseClock(*window.Close)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if openMin >= closeMin {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Opening time must be before closing time on " + strings.ToLower(day),
			})
			return
		}
		rows = append(rows, models.DayHours{
			RestaurantID: restaurant.ID,
			Weekday:      idx,
			OpenMinutes:  openMin,
			CloseMinutes: closeMin,
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).
			Delete(&models.DayHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hours"})
		return
	}

	config.DB.Preload("Hours").First(restaurant, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Hours updated", "restaurant": restaurant})
}

// ── Menu management ─────────────────────────────────────────────────────────

type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// AddMenuItem adds a new item to the restaurant's menu
func AddMenuItem(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// ownedMenuItem loads a menu item and verifies it belongs to the caller's
// restaurant.
func ownedMenuItem(c *gin.Context) (*models.MenuItem, bool) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return nil, false
	}
	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return nil, false
	}
	return &item, true
}

// UpdateMenuItem updates a menu item (only by the owner)
func UpdateMenuItem(c *gin.Context) {
	item, ok := ownedMenuItem(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	if err := config.DB.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item
func DeleteMenuItem(c *gin.Context) {
	item, ok := ownedMenuItem(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
