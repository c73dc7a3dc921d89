package models

import "time"

// OrderStatus represents the stages of an order's life. NOT_PLACED_YET is the
// customer's cart for a restaurant; the remaining states are irreversible.
type OrderStatus string

const (
	StatusNotPlacedYet   OrderStatus = "NOT_PLACED_YET"
	StatusPlaced         OrderStatus = "PLACED"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusInTransit      OrderStatus = "IN_TRANSIT"
	StatusDelivered      OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNotPlacedYet, StatusPlaced, StatusReadyForPickup, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID            uint                     `json:"id" gorm:"primaryKey"`
	CustomerID    uint                     `json:"customer_id" gorm:"not null"`
	Customer      User                     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID  uint                     `json:"restaurant_id" gorm:"not null"`
	Restaurant    Restaurant               `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        OrderStatus              `json:"status" gorm:"not null;default:'NOT_PLACED_YET'"`
	TotalCost     float64                  `json:"total_cost"`
	DatePlaced    *time.Time               `json:"date_placed"`
	DateDelivered *time.Time               `json:"date_delivered"`
	AcceptedByID  *uint                    `json:"accepted_by_id"`
	AcceptedBy    *DeliveryContractorInfo  `json:"accepted_by,omitempty" gorm:"foreignKey:AcceptedByID"`
	RejectedBy    []DeliveryContractorInfo `json:"rejected_by,omitempty" gorm:"many2many:order_rejections"`
	Items         []OrderItem              `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null;uniqueIndex:idx_order_menu_item"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_order_menu_item"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
}

// Payment is created once, at placement time. AmountPaid is a copy of the
// order total computed at that moment.
type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         uint      `json:"order_id" gorm:"uniqueIndex;not null"`
	PaymentMethod   string    `json:"payment_method" gorm:"not null"`
	CardholderName  string    `json:"cardholder_name" gorm:"not null"`
	BillingAddress  string    `json:"billing_address" gorm:"not null"`
	CardNumber      string    `json:"-" gorm:"not null"`
	ExpirationMonth int       `json:"expiration_month" gorm:"not null"`
	ExpirationYear  int       `json:"expiration_year" gorm:"not null"`
	CVV             string    `json:"-" gorm:"not null"`
	AmountPaid      float64   `json:"amount_paid" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// CalcTotalCost sums price x quantity over the order's items. Items and their
// menu items must be preloaded.
func (o *Order) CalcTotalCost() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.MenuItem.Price * float64(item.Quantity)
	}
	return total
}
