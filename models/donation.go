package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationStatus represents all possible states of a surplus-food donation
type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusClaimed   DonationStatus = "claimed"
	StatusDelivered DonationStatus = "delivered"
)

type Donation struct {
	ID             string         `json:"id" gorm:"primaryKey;size:36"`
	FoodItem       string         `json:"food_item" gorm:"not null"`
	Quantity       string         `json:"quantity" gorm:"not null"` // free text, e.g. "10 meals", "5kg"
	PickupAddress  string         `json:"pickup_address" gorm:"not null"`
	ExpiryTime     time.Time      `json:"expiry_time" gorm:"not null"`
	RestaurantID   string         `json:"restaurant_id" gorm:"size:36;not null;index"`
	RestaurantName string         `json:"restaurant_name"` // snapshot of the restaurant's name at post time
	Status         DonationStatus `json:"status" gorm:"not null;default:'available';index"`
	ClaimedBy      *string        `json:"claimed_by"`    // "Role: Name" label of the claimer
	ClaimedByID    *string        `json:"claimed_by_id"` // user id of the claimer
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// BeforeCreate assigns a UUID so ids stay opaque strings over the wire
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
