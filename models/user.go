package models

import (
	"time"
)

// UserType tags an account with the one kind of profile it owns.
// It is set at registration and never changes afterwards.
type UserType string

const (
	TypeRegular    UserType = "regular"
	TypeRestaurant UserType = "restaurant"
	TypeDelivery   UserType = "delivery"
)

func (t UserType) Valid() bool {
	return t == TypeRegular || t == TypeRestaurant || t == TypeDelivery
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	UserType     UserType  `json:"user_type" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerInfo is the profile owned by a regular user. Location is free text;
// Latitude/Longitude are derived from it and are set iff Location is non-empty.
type CustomerInfo struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	UserID    uint     `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName string   `json:"first_name" gorm:"not null"`
	LastName  string   `json:"last_name" gorm:"not null"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DeliveryContractorInfo is the profile owned by a delivery user. Unlike a
// customer's, its location is mandatory.
type DeliveryContractorInfo struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	UserID    uint     `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName string   `json:"first_name" gorm:"not null"`
	LastName  string   `json:"last_name" gorm:"not null"`
	Location  string   `json:"location" gorm:"not null"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HasCoordinates reports whether the profile's location has been resolved.
func (ci *CustomerInfo) HasCoordinates() bool {
	return ci.Latitude != nil && ci.Longitude != nil
}

func (di *DeliveryContractorInfo) HasCoordinates() bool {
	return di.Latitude != nil && di.Longitude != nil
}
