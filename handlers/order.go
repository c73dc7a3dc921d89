package handlers

import (
	"net/http"
	"time"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"
	"dinedash-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	CardholderName  string `json:"cardholder_name" binding:"required"`
	BillingAddress  string `json:"billing_address" binding:"required"`
	CardNumber      string `json:"card_number" binding:"required"`
	ExpirationMonth int    `json:"expiration_month" binding:"required,min=1,max=12"`
	ExpirationYear  int    `json:"expiration_year" binding:"required"`
	CVV             string `json:"cvv" binding:"required"`
}

// PlaceOrder checks out the cart: records the payment with the computed
// total, stamps the placement time and moves the order to PLACED. Everything
// happens in one transaction; an unmet precondition leaves no trace.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").
		Where("id = ? AND customer_id = ? AND status = ?",
			c.Param("id"), customerID, models.StatusNotPlacedYet).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if len(order.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot place an empty order"})
		return
	}

	var info models.CustomerInfo
	if err := config.DB.Where("user_id = ?", customerID).First(&info).Error; err != nil || !info.HasCoordinates() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A delivery location must be set on your account before placing an order"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusPlaced, statemachine.ActorCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid state transition", "reason": err.Error()})
		return
	}

	total := order.CalcTotalCost()
	now := time.Now()

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			OrderID:         order.ID,
			PaymentMethod:   req.PaymentMethod,
			CardholderName:  req.CardholderName,
			BillingAddress:  req.BillingAddress,
			CardNumber:      req.CardNumber,
			ExpirationMonth: req.ExpirationMonth,
			ExpirationYear:  req.ExpirationYear,
			CVV:             req.CVV,
			AmountPaid:      total,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&order).Updates(map[string]interface{}{
			"status":      models.StatusPlaced,
			"total_cost":  total,
			"date_placed": now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Order placed",
		"order_id":   order.ID,
		"total_cost": total,
		"status":     models.StatusPlaced,
	})
}

// GetRestaurantOrders returns the owner's order queue. Defaults to the
// PLACED orders awaiting preparation; a status query widens or narrows it.
func GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	status := models.OrderStatus(c.DefaultQuery("status", string(models.StatusPlaced)))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	var orders []models.Order
	config.DB.Preload("Items.MenuItem").Preload("Customer").
		Where("restaurant_id = ? AND status = ?", restaurant.ID, status).
		Order("date_placed asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MarkReadyForPickup transitions one of the owner's PLACED orders to
// READY_FOR_PICKUP. The update is conditional on the source state, so a
// repeated call changes nothing.
func MarkReadyForPickup(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusReadyForPickup, statemachine.ActorRestaurant); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	result := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.StatusPlaced).
		Update("status", models.StatusReadyForPickup)
	if result.Error != nil || result.RowsAffected == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order is no longer awaiting preparation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order marked ready for pickup",
		"order_id": order.ID,
		"status":   models.StatusReadyForPickup,
	})
}
