package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resqfood-api/lifecycle"
	"resqfood-api/models"
)

type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

// Root is the welcome endpoint
func (h *PublicHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "🍛 Welcome to the ResqFood API",
		"docs":    "/lifecycle",
		"health":  "/health",
		"roles":   []string{"restaurant", "ngo", "society", "admin"},
	})
}

// Health reports service and database connectivity
func (h *PublicHandler) Health(c *gin.Context) {
	dbStatus := "connected"
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "ResqFood Donation API",
		"version":  "1.0.0",
		"database": dbStatus,
	})
}

// GetLifecycleInfo returns the donation state machine for informational purposes
func (h *PublicHandler) GetLifecycleInfo(c *gin.Context) {
	transitions := []gin.H{}
	for _, t := range lifecycle.AllTransitions() {
		transitions = append(transitions, gin.H{
			"from":  t.From,
			"to":    t.To,
			"actor": t.Actor,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   transitions,
		"terminal_states": []models.DonationStatus{models.StatusDelivered},
		"description":     "Surplus Food Donation Lifecycle State Machine",
	})
}
