package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dinedash-api/config"
	"dinedash-api/geo"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Location  string `json:"location"`
	// Restaurant registration only
	RestaurantName string `json:"restaurant_name"`
	Description    string `json:"description"`
}

// resolveLocation turns location text into coordinates. Not-found and
// provider failures are reported identically: the form's location is invalid.
func resolveLocation(c *gin.Context, location string) (*float64, *float64, bool) {
	point, err := config.Geo.Resolve(c.Request.Context(), location)
	if err != nil {
		var geoErr *geo.GeocodingError
		if !errors.Is(err, geo.ErrNotFound) && errors.As(err, &geoErr) {
			logrus.WithError(err).Warn("geocoder failure")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find location"})
		return nil, nil, false
	}
	return &point.Latitude, &point.Longitude, true
}

// emailTaken checks case-insensitive email uniqueness.
func emailTaken(email string, excludeUserID uint) bool {
	var count int64
	config.DB.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, excludeUserID).
		Count(&count)
	return count > 0
}

func createUser(c *gin.Context, req *RegisterRequest, userType models.UserType) (*models.User, bool) {
	if emailTaken(req.Email, 0) {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email address already exists"})
		return nil, false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return nil, false
	}
	return &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		UserType:     userType,
	}, true
}

func respondWithToken(c *gin.Context, user *models.User, status int) {
	token, err := middleware.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"user_type": user.UserType,
		},
	})
}

// RegisterRegular creates a customer account. Location is optional; when
// present it must geocode.
func RegisterRegular(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name are required"})
		return
	}

	var lat, lon *float64
	location := strings.TrimSpace(req.Location)
	if location != "" {
		var ok bool
		if lat, lon, ok = resolveLocation(c, location); !ok {
			return
		}
	}

	user, ok := createUser(c, &req, models.TypeRegular)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.CustomerInfo{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Location:  location,
			Latitude:  lat,
			Longitude: lon,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	respondWithToken(c, user, http.StatusCreated)
}

// RegisterRestaurant creates a restaurant account with its restaurant record.
// Location is required and must geocode.
func RegisterRestaurant(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RestaurantName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant name is required"})
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You need to include a valid location"})
		return
	}
	lat, lon, ok := resolveLocation(c, location)
	if !ok {
		return
	}

	user, ok := createUser(c, &req, models.TypeRestaurant)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Restaurant{
			UserID:      user.ID,
			Name:        req.RestaurantName,
			Description: req.Description,
			Location:    location,
			Latitude:    lat,
			Longitude:   lon,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	respondWithToken(c, user, http.StatusCreated)
}

// RegisterDelivery creates a delivery contractor account. Location is
// required and must geocode.
func RegisterDelivery(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name are required"})
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You need to include a valid location"})
		return
	}
	lat, lon, ok := resolveLocation(c, location)
	if !ok {
		return
	}

	user, ok := createUser(c, &req, models.TypeDelivery)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.DeliveryContractorInfo{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Location:  location,
			Latitude:  lat,
			Longitude: lon,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	respondWithToken(c, user, http.StatusCreated)
}

// loginAs authenticates a user and checks the account is of the expected
// type. Valid credentials on the wrong login endpoint are rejected.
func loginAs(c *gin.Context, userType models.UserType) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email and password are incorrect"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email and password are incorrect"})
		return
	}
	if user.UserType != userType {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "This endpoint is not intended for the type of account associated with the credentials you provided",
		})
		return
	}
	respondWithToken(c, &user, http.StatusOK)
}

func LoginRegular(c *gin.Context)    { loginAs(c, models.TypeRegular) }
func LoginRestaurant(c *gin.Context) { loginAs(c, models.TypeRestaurant) }
func LoginDelivery(c *gin.Context)   { loginAs(c, models.TypeDelivery) }

// GetProfile returns the authenticated user's account and profile
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"user": user}
	switch user.UserType {
	case models.TypeRegular:
		var info models.CustomerInfo
		if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err == nil {
			resp["profile"] = info
		}
	case models.TypeDelivery:
		var info models.DeliveryContractorInfo
		if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err == nil {
			resp["profile"] = info
		}
	case models.TypeRestaurant:
		var restaurant models.Restaurant
		if err := config.DB.Preload("Hours").Where("user_id = ?", userID).First(&restaurant).Error; err == nil {
			resp["restaurant"] = restaurant
		}
	}
	c.JSON(http.StatusOK, resp)
}

type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangeEmail updates the account email, keeping case-insensitive uniqueness.
func ChangeEmail(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if emailTaken(req.Email, userID) {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email address already exists"})
		return
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("email", req.Email).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email updated"})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword verifies the old password before setting the new one.
func ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
