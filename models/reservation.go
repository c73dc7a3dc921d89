package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCancelled
}

// Table is a physical table. LocalID is the restaurant-scoped table number
// shown to staff, unique within the restaurant.
type Table struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	RestaurantID uint `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_table_restaurant_local"`
	LocalID      int  `json:"local_id" gorm:"not null;uniqueIndex:idx_table_restaurant_local"`
	Capacity     int  `json:"capacity" gorm:"not null"`
}

// Reservation holds a booked time span. StartDate and EndDate are computed
// from the requested date, time and duration at creation. TableID stays nil
// until the restaurant assigns a table; assignments must never overlap another
// reservation on the same table.
type Reservation struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	RestaurantID   uint              `json:"restaurant_id" gorm:"not null"`
	UserID         uint              `json:"user_id" gorm:"not null"`
	NumberOfGuests int               `json:"number_of_guests" gorm:"not null"`
	StartDate      time.Time         `json:"start_date" gorm:"not null"`
	EndDate        time.Time         `json:"end_date" gorm:"not null"`
	Status         ReservationStatus `json:"status" gorm:"not null;default:'pending'"`
	TableID        *uint             `json:"table_id"`
	Table          *Table            `json:"table,omitempty" gorm:"foreignKey:TableID"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
