package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"resqfood-api/middleware"
	"resqfood-api/models"
	"resqfood-api/repositories"
)

type AuthHandler struct {
	users     *repositories.UserRepository
	jwtSecret []byte
}

func NewAuthHandler(users *repositories.UserRepository, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=restaurant ngo society admin"`
	Address  *string         `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Address:      req.Address,
		IsActive:     true,
	}
	if _, err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    userView(user),
	})
}

// Login authenticates a user and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, models.ErrInvalidCredential)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, models.ErrInvalidCredential)
		return
	}

	token, err := middleware.GenerateToken(user, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userView(user),
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"role":    u.Role,
		"address": u.Address,
	}
}
