package handlers

import (
	"net/http"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SetOrderItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// SetOrderItem adds or edits a cart line for a menu item. The cart is the
// customer's NOT_PLACED_YET order for the item's restaurant, created on the
// first add. Quantity 0 removes the line; siblings and the order itself
// survive.
func SetOrderItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var menuItem models.MenuItem
	if err := config.DB.First(&menuItem, c.Param("menuItemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req SetOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quantity := *req.Quantity

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Get-or-create keyed on (customer, restaurant, NOT_PLACED_YET); the
		// partial unique index serializes concurrent first adds.
		err := tx.Where(models.Order{
			CustomerID:   customerID,
			RestaurantID: menuItem.RestaurantID,
			Status:       models.StatusNotPlacedYet,
		}).FirstOrCreate(&order).Error
		if err != nil {
			// A concurrent request may have created the cart between the find
			// and the insert; the index rejects the duplicate, so re-read.
			return tx.Where(models.Order{
				CustomerID:   customerID,
				RestaurantID: menuItem.RestaurantID,
				Status:       models.StatusNotPlacedYet,
			}).First(&order).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open cart"})
		return
	}

	if quantity == 0 {
		if err := config.DB.Where("order_id = ? AND menu_item_id = ?", order.ID, menuItem.ID).
			Delete(&models.OrderItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "order_id": order.ID})
		return
	}

	var item models.OrderItem
	err = config.DB.Where(models.OrderItem{OrderID: order.ID, MenuItemID: menuItem.ID}).
		Assign(models.OrderItem{Quantity: quantity}).
		FirstOrCreate(&item).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cart updated",
		"order_id": order.ID,
		"item":     item,
	})
}

// GetOrder returns one of the caller's orders with items and a running
// total. Works for the cart and for placed orders alike.
func GetOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("id = ? AND customer_id = ?", c.Param("id"), customerID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":         order,
		"running_total": order.CalcTotalCost(),
	})
}

// GetMyOrders lists the customer's placed orders, newest first, optionally
// filtered by status. The cart is excluded.
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	query := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("customer_id = ? AND status <> ?", customerID, models.StatusNotPlacedYet)

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("date_placed desc, id desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}
