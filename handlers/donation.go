package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resqfood-api/models"
	"resqfood-api/repositories"
)

type DonationHandler struct {
	donations *repositories.DonationRepository
}

func NewDonationHandler(donations *repositories.DonationRepository) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type CreateDonationRequest struct {
	FoodItem       string    `json:"food_item" binding:"required"`
	Quantity       string    `json:"quantity" binding:"required"`
	PickupAddress  string    `json:"pickup_address" binding:"required"`
	ExpiryTime     time.Time `json:"expiry_time" binding:"required"`
	RestaurantID   string    `json:"restaurant_id" binding:"required"`
	RestaurantName string    `json:"restaurant_name" binding:"required"`
}

type UpdateDonationRequest struct {
	FoodItem      *string    `json:"food_item"`
	Quantity      *string    `json:"quantity"`
	PickupAddress *string    `json:"pickup_address"`
	ExpiryTime    *time.Time `json:"expiry_time"`
}

type ClaimDonationRequest struct {
	UserID   string          `json:"user_id" binding:"required"`
	UserName string          `json:"user_name" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required,oneof=ngo society"`
}

type ListDonationsQuery struct {
	Status         models.DonationStatus `form:"status" binding:"omitempty,oneof=available claimed delivered"`
	RestaurantID   string                `form:"restaurant_id"`
	ExcludeClaimed bool                  `form:"exclude_claimed"`
	Search         string                `form:"search"`
}

// CreateDonation posts a new surplus-food donation for a restaurant
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireID(c, req.RestaurantID) {
		return
	}

	donation := &models.Donation{
		FoodItem:       req.FoodItem,
		Quantity:       req.Quantity,
		PickupAddress:  req.PickupAddress,
		ExpiryTime:     req.ExpiryTime,
		RestaurantID:   req.RestaurantID,
		RestaurantName: req.RestaurantName,
	}
	created, err := h.donations.Create(c.Request.Context(), donation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation posted successfully",
		"donation": created,
	})
}

// ListDonations returns all donations matching the query filters
func (h *DonationHandler) ListDonations(c *gin.Context) {
	var q ListDonationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donations, err := h.donations.List(c.Request.Context(), repositories.DonationFilter{
		Status:         q.Status,
		RestaurantID:   q.RestaurantID,
		ExcludeClaimed: q.ExcludeClaimed,
		Search:         q.Search,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(donations),
		"donations": donations,
	})
}

// UpdateDonation applies a partial edit to the non-status fields
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	id := c.Param("id")
	if !requireID(c, id) {
		return
	}
	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.donations.Update(c.Request.Context(), id, repositories.DonationUpdate{
		FoodItem:      req.FoodItem,
		Quantity:      req.Quantity,
		PickupAddress: req.PickupAddress,
		ExpiryTime:    req.ExpiryTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation updated",
		"donation": updated,
	})
}

// DeleteDonation hard-deletes a donation
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	id := c.Param("id")
	if !requireID(c, id) {
		return
	}
	if err := h.donations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClaimDonation reserves an available donation for an NGO/society user
func (h *DonationHandler) ClaimDonation(c *gin.Context) {
	id := c.Param("id")
	if !requireID(c, id) {
		return
	}
	var req ClaimDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !requireID(c, req.UserID) {
		return
	}

	claimed, err := h.donations.Claim(c.Request.Context(), id, req.UserID, req.UserName, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation claimed successfully",
		"donation": claimed,
	})
}

// DeliverDonation marks a donation delivered
func (h *DonationHandler) DeliverDonation(c *gin.Context) {
	id := c.Param("id")
	if !requireID(c, id) {
		return
	}

	delivered, err := h.donations.Deliver(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation delivered successfully! 🎉",
		"donation": delivered,
	})
}
