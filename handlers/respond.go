package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resqfood-api/models"
)

// respondError maps store errors onto distinct client-visible statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
	case errors.Is(err, models.ErrMalformedID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
	case errors.Is(err, models.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant user"})
	case errors.Is(err, models.ErrInvalidClaimer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claimer"})
	case errors.Is(err, models.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Donation not available"})
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, models.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requireID rejects ids that are not valid UUIDs before they reach the
// store, so malformed identifiers never round-trip as lookups
func requireID(c *gin.Context, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, models.ErrMalformedID)
		return false
	}
	return true
}
