package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resqfood-api/cache"
	"resqfood-api/models"
	"resqfood-api/repositories"
)

type AdminHandler struct {
	users     *repositories.UserRepository
	donations *repositories.DonationRepository
	cache     *cache.Cache
}

func NewAdminHandler(users *repositories.UserRepository, donations *repositories.DonationRepository, c *cache.Cache) *AdminHandler {
	return &AdminHandler{users: users, donations: donations, cache: c}
}

// Overview is the admin dashboard aggregate: user counts per role and
// donation counts per status
type Overview struct {
	Restaurants int64 `json:"restaurants"`
	NGOs        int64 `json:"ngos"`
	Societies   int64 `json:"societies"`
	Admins      int64 `json:"admins"`
	Donations   int64 `json:"donations"`
	Available   int64 `json:"available"`
	Claimed     int64 `json:"claimed"`
	Delivered   int64 `json:"delivered"`
}

// GetOverview returns aggregate counts for the admin dashboard. Counts are
// served from the redis cache for a short window when a cache is configured.
func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(), "admin:overview", 30*time.Second, h.loadOverview)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) loadOverview(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error
	if o.Restaurants, err = h.users.CountByRole(ctx, models.RoleRestaurant); err != nil {
		return nil, err
	}
	if o.NGOs, err = h.users.CountByRole(ctx, models.RoleNGO); err != nil {
		return nil, err
	}
	if o.Societies, err = h.users.CountByRole(ctx, models.RoleSociety); err != nil {
		return nil, err
	}
	if o.Admins, err = h.users.CountByRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	if o.Donations, err = h.donations.Count(ctx); err != nil {
		return nil, err
	}
	if o.Available, err = h.donations.CountByStatus(ctx, models.StatusAvailable); err != nil {
		return nil, err
	}
	if o.Claimed, err = h.donations.CountByStatus(ctx, models.StatusClaimed); err != nil {
		return nil, err
	}
	if o.Delivered, err = h.donations.CountByStatus(ctx, models.StatusDelivered); err != nil {
		return nil, err
	}
	return &o, nil
}
