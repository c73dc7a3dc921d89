package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dinedash-api/config"
	"dinedash-api/geo"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultMaxDistanceMiles = 5

// contractorProfile loads the signed-in contractor's profile.
func contractorProfile(c *gin.Context) (*models.DeliveryContractorInfo, bool) {
	userID := middleware.GetUserID(c)
	var info models.DeliveryContractorInfo
	if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No contractor profile found for your account"})
		return nil, false
	}
	return &info, true
}

// DeliveryOrderListing is one row in the contractor's order list, with both
// legs of the trip measured from the contractor's location.
type DeliveryOrderListing struct {
	OrderID                uint     `json:"order_id"`
	Status                 string   `json:"status"`
	RestaurantLocation     string   `json:"restaurant_location"`
	RestaurantDistanceAway *float64 `json:"restaurant_distance_away"`
	CustomerLocation       string   `json:"customer_location"`
	CustomerDistanceAway   *float64 `json:"customer_distance_away"`
}

func listingFor(order *models.Order, origin *geo.Point) DeliveryOrderListing {
	row := DeliveryOrderListing{
		OrderID: order.ID,
		Status:  string(order.Status),
	}
	row.RestaurantLocation = order.Restaurant.Location
	if origin != nil && order.Restaurant.Latitude != nil && order.Restaurant.Longitude != nil {
		d := geo.DistanceMiles(*origin, geo.Point{
			Latitude:  *order.Restaurant.Latitude,
			Longitude: *order.Restaurant.Longitude,
		})
		row.RestaurantDistanceAway = &d
	}

	var info models.CustomerInfo
	if err := config.DB.Where("user_id = ?", order.CustomerID).First(&info).Error; err == nil {
		row.CustomerLocation = info.Location
		if origin != nil && info.HasCoordinates() {
			d := geo.DistanceMiles(*origin, geo.Point{Latitude: *info.Latitude, Longitude: *info.Longitude})
			row.CustomerDistanceAway = &d
		}
	}
	return row
}

// GetDeliveryOrders lists orders for the contractor. With status=accepted it
// shows their in-transit deliveries; otherwise the unclaimed pool —
// READY_FOR_PICKUP orders they have not rejected — trimmed to those whose
// restaurant and customer are both within max_distance miles (default 5).
func GetDeliveryOrders(c *gin.Context) {
	contractor, ok := contractorProfile(c)
	if !ok {
		return
	}

	var origin *geo.Point
	if contractor.HasCoordinates() {
		origin = &geo.Point{Latitude: *contractor.Latitude, Longitude: *contractor.Longitude}
	}

	if c.Query("status") == "accepted" {
		var orders []models.Order
		config.DB.Preload("Restaurant").
			Where("accepted_by_id = ? AND status = ?", contractor.ID, models.StatusInTransit).
			Find(&orders)

		listings := make([]DeliveryOrderListing, 0, len(orders))
		for i := range orders {
			listings = append(listings, listingFor(&orders[i], origin))
		}
		c.JSON(http.StatusOK, gin.H{"count": len(listings), "orders": listings})
		return
	}

	maxDistance := float64(defaultMaxDistanceMiles)
	if raw := c.Query("max_distance"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			maxDistance = float64(parsed)
		}
	}

	var orders []models.Order
	config.DB.Preload("Restaurant").
		Where("status = ? AND accepted_by_id IS NULL", models.StatusReadyForPickup).
		Where("id NOT IN (SELECT order_id FROM order_rejections WHERE delivery_contractor_info_id = ?)", contractor.ID).
		Order("date_placed asc").
		Find(&orders)

	listings := make([]DeliveryOrderListing, 0, len(orders))
	for i := range orders {
		row := listingFor(&orders[i], origin)
		if row.RestaurantDistanceAway == nil || row.CustomerDistanceAway == nil {
			continue
		}
		if *row.RestaurantDistanceAway <= maxDistance && *row.CustomerDistanceAway <= maxDistance {
			listings = append(listings, row)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(listings),
		"max_distance": maxDistance,
		"orders":       listings,
	})
}

// AcceptOrder claims an unclaimed READY_FOR_PICKUP order. The update only
// succeeds if nobody holds the claim at commit time, so of two concurrent
// accepts exactly one wins; the loser gets a conflict and the order
// disappears from their unclaimed pool.
func AcceptOrder(c *gin.Context) {
	contractor, ok := contractorProfile(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ? AND accepted_by_id IS NULL",
			c.Param("id"), models.StatusReadyForPickup).
		Updates(map[string]interface{}{
			"status":         models.StatusInTransit,
			"accepted_by_id": contractor.ID,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept order"})
		return
	}
	if result.RowsAffected == 0 {
		logrus.WithField("order_id", c.Param("id")).Info("lost delivery claim race")
		c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer available for pickup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order accepted",
		"status":  models.StatusInTransit,
	})
}

// RejectOrder permanently removes an order from the contractor's unclaimed
// pool. The current claim holder cannot reject their own delivery; the
// order's status is untouched.
func RejectOrder(c *gin.Context) {
	contractor, ok := contractorProfile(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.AcceptedByID != nil && *order.AcceptedByID == contractor.ID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "You have already accepted this order"})
		return
	}

	if err := config.DB.Model(&order).Association("RejectedBy").Append(contractor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order rejected"})
}

// DeliverOrder completes a delivery: IN_TRANSIT to DELIVERED, stamping the
// delivery time. Only the claim holder can do it.
func DeliverOrder(c *gin.Context) {
	contractor, ok := contractorProfile(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ? AND accepted_by_id = ?",
			c.Param("id"), models.StatusInTransit, contractor.ID).
		Updates(map[string]interface{}{
			"status":         models.StatusDelivered,
			"date_delivered": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No in-transit delivery of yours matches this order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order delivered",
		"status":  models.StatusDelivered,
	})
}
