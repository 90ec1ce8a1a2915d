package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resqfood-api/handlers"
	"resqfood-api/middleware"
	"resqfood-api/models"
)

// Handlers bundles everything SetupRoutes needs to wire the API
type Handlers struct {
	Auth      *handlers.AuthHandler
	Donations *handlers.DonationHandler
	Admin     *handlers.AdminHandler
	Public    *handlers.PublicHandler
	JWTSecret []byte
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Service endpoints ──────────────────────────────────────────
	r.GET("/", h.Public.Root)
	r.GET("/health", h.Public.Health)
	r.GET("/lifecycle", h.Public.GetLifecycleInfo)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── Auth ───────────────────────────────────────────────────────
	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	// ── Donations ──────────────────────────────────────────────────
	// Claim identity travels in the request body and is re-validated
	// against the identity store, so these routes carry no token gate.
	donations := r.Group("/donations")
	{
		donations.POST("", h.Donations.CreateDonation)
		donations.GET("", h.Donations.ListDonations)
		donations.PATCH("/:id", h.Donations.UpdateDonation)
		donations.DELETE("/:id", h.Donations.DeleteDonation)
		donations.POST("/:id/claim", h.Donations.ClaimDonation)
		donations.POST("/:id/deliver", h.Donations.DeliverDonation)
	}

	// ── Admin ──────────────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/overview", h.Admin.GetOverview)
	}
}
