package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"resqfood-api/lifecycle"
	"resqfood-api/models"
)

// DonationRepository owns donation records: creation, filtered listing,
// partial updates, hard deletes, and the two lifecycle operations (claim,
// deliver). No other component mutates donations directly.
type DonationRepository struct {
	db    *gorm.DB
	users *UserRepository
}

func NewDonationRepository(db *gorm.DB, users *UserRepository) *DonationRepository {
	return &DonationRepository{db: db, users: users}
}

// DonationUpdate carries the optional non-status fields a PATCH may change
type DonationUpdate struct {
	FoodItem      *string
	Quantity      *string
	PickupAddress *string
	ExpiryTime    *time.Time
}

// Create inserts a new available donation. The restaurant reference must
// resolve to an existing user with the restaurant role.
func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) (*models.Donation, error) {
	owner, err := r.users.FindByID(ctx, d.RestaurantID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Role != models.RoleRestaurant {
		return nil, models.ErrInvalidReference
	}

	d.Status = models.StatusAvailable
	d.ClaimedBy = nil
	d.ClaimedByID = nil
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// FindByID fetches a single donation
func (r *DonationRepository) FindByID(ctx context.Context, id string) (*models.Donation, error) {
	var d models.Donation
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all donations matching the filter, most recent first
func (r *DonationRepository) List(ctx context.Context, f DonationFilter) ([]models.Donation, error) {
	donations := []models.Donation{}
	q := f.Apply(r.db.WithContext(ctx).Model(&models.Donation{}))
	if err := q.Order("created_at desc").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Update applies the non-nil fields of the patch. Status and claim fields
// are never touched here; updated_at is refreshed even for an empty patch.
func (r *DonationRepository) Update(ctx context.Context, id string, patch DonationUpdate) (*models.Donation, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.FoodItem != nil {
		changes["food_item"] = *patch.FoodItem
	}
	if patch.Quantity != nil {
		changes["quantity"] = *patch.Quantity
	}
	if patch.PickupAddress != nil {
		changes["pickup_address"] = *patch.PickupAddress
	}
	if patch.ExpiryTime != nil {
		changes["expiry_time"] = *patch.ExpiryTime
	}

	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete hard-deletes a donation
func (r *DonationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Donation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Claim reserves an available donation for an NGO/society user. The status
// check and the write are a single conditional UPDATE matching both id and
// status=available, so two concurrent claims cannot both succeed: the loser
// matches zero rows and gets ErrInvalidState.
func (r *DonationRepository) Claim(ctx context.Context, donationID, userID, userName string, role models.UserRole) (*models.Donation, error) {
	if err := lifecycle.CanClaim(models.StatusAvailable, role); err != nil {
		return nil, err
	}
	claimer, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if claimer == nil || !claimer.CanClaim() {
		return nil, models.ErrInvalidClaimer
	}

	res := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("id = ? AND status = ?", donationID, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":        models.StatusClaimed,
			"claimed_by":    lifecycle.ClaimLabel(role, userName),
			"claimed_by_id": userID,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// either the id is unknown or someone else claimed it first
		if _, err := r.FindByID(ctx, donationID); err != nil {
			return nil, err
		}
		return nil, models.ErrInvalidState
	}
	return r.FindByID(ctx, donationID)
}

// Deliver marks a donation delivered. There is no status precondition: an
// unclaimed donation can be delivered directly and a delivered one can be
// re-delivered, matching the lifecycle table.
func (r *DonationRepository) Deliver(ctx context.Context, donationID string) (*models.Donation, error) {
	if _, err := r.FindByID(ctx, donationID); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("id = ?", donationID).
		Updates(map[string]interface{}{
			"status":     models.StatusDelivered,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, donationID)
}

// Count returns the total number of donations
func (r *DonationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Donation{}).Count(&n).Error
	return n, err
}

// CountByStatus counts donations in the given state
func (r *DonationRepository) CountByStatus(ctx context.Context, status models.DonationStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Donation{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
