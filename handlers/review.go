package handlers

import (
	"net/http"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
)

type ReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description"`
}

// ListReviews returns all reviews for a restaurant (public)
func ListReviews(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var reviews []models.RestaurantReview
	config.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// CreateReview adds the caller's review of a restaurant. One review per
// (user, restaurant) pair; the unique index backs this up.
func CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.RestaurantReview
	if err := config.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurant.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this restaurant"})
		return
	}

	review := models.RestaurantReview{
		UserID:       userID,
		RestaurantID: restaurant.ID,
		Rating:       req.Rating,
		Description:  req.Description,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review created", "review": review})
}

// UpdateReview edits the caller's own review of a restaurant.
func UpdateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var review models.RestaurantReview
	if err := config.DB.Where("user_id = ? AND restaurant_id = ?", userID, c.Param("id")).
		First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review.Rating = req.Rating
	review.Description = req.Description
	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated", "review": review})
}

// DeleteReview removes the caller's own review.
func DeleteReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var review models.RestaurantReview
	if err := config.DB.Where("user_id = ? AND restaurant_id = ?", userID, c.Param("id")).
		First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if err := config.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
