package models

import "time"

type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Location    string     `json:"location" gorm:"not null"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Hours       []DayHours `json:"hours,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DayHours is one weekday's open window. Weekday follows time.Weekday
// (0 = Sunday). A restaurant with no row for a weekday is closed that day.
type DayHours struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	RestaurantID uint `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_restaurant_weekday"`
	Weekday      int  `json:"weekday" gorm:"not null;uniqueIndex:idx_restaurant_weekday"`
	OpenMinutes  int  `json:"open_minutes" gorm:"not null"`
	CloseMinutes int  `json:"close_minutes" gorm:"not null"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RestaurantReview struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_review_user_restaurant"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_review_user_restaurant"`
	Rating       int       `json:"rating" gorm:"not null"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
