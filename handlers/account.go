package handlers

import (
	"net/http"
	"strings"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

type AccountDetailsRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Location  string `json:"location"`
}

// UpdateCustomerDetails edits the customer profile. Coordinates are
// recomputed only when the location text changed, and cleared when the
// customer blanks the field.
func UpdateCustomerDetails(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var info models.CustomerInfo
	if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req AccountDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := strings.TrimSpace(req.Location)
	if location != info.Location {
		if location == "" {
			info.Latitude, info.Longitude = nil, nil
		} else {
			lat, lon, ok := resolveLocation(c, location)
			if !ok {
				return
			}
			info.Latitude, info.Longitude = lat, lon
		}
	}
	info.FirstName = req.FirstName
	info.LastName = req.LastName
	info.Location = location

	if err := config.DB.Save(&info).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": info})
}

// UpdateDeliveryDetails edits the contractor profile. Location stays
// mandatory; coordinates are recomputed only when it changed.
func UpdateDeliveryDetails(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var info models.DeliveryContractorInfo
	if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var req AccountDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You need to include a valid location"})
		return
	}
	if location != info.Location {
		lat, lon, ok := resolveLocation(c, location)
		if !ok {
			return
		}
		info.Latitude, info.Longitude = lat, lon
	}
	info.FirstName = req.FirstName
	info.LastName = req.LastName
	info.Location = location

	if err := config.DB.Save(&info).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": info})
}
