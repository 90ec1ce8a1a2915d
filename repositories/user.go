package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"resqfood-api/models"
)

// UserRepository persists user records over an injected gorm handle
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Fails with ErrDuplicateEmail if the email is
// already registered.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	var existing models.User
	err := r.db.WithContext(ctx).First(&existing, "email = ?", u.Email).Error
	if err == nil {
		return nil, models.ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// concurrent registration can still trip the unique index
		if isDupKey(err) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// FindByID looks a user up by id. Returns (nil, nil) when absent.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail looks a user up by email. Returns (nil, nil) when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountByRole counts users holding the given role
func (r *UserRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
