package repositories

import (
	"strings"

	"gorm.io/gorm"

	"resqfood-api/models"
)

// DonationFilter is the typed set of optional listing predicates. A zero
// filter matches everything.
type DonationFilter struct {
	Status         models.DonationStatus
	RestaurantID   string
	ExcludeClaimed bool
	Search         string
}

// Apply composes the filter onto a donation query. ExcludeClaimed forces
// status=available and wins over an explicit Status (last-write-wins, kept
// for compatibility with existing clients).
func (f DonationFilter) Apply(q *gorm.DB) *gorm.DB {
	status := f.Status
	if f.ExcludeClaimed {
		status = models.StatusAvailable
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if f.RestaurantID != "" {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(food_item) LIKE ? OR LOWER(restaurant_name) LIKE ? OR LOWER(pickup_address) LIKE ?",
			like, like, like,
		)
	}
	return q
}
