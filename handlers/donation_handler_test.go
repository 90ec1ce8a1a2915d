package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resqfood-api/handlers"
	"resqfood-api/models"
	"resqfood-api/repositories"
	"resqfood-api/routes"
)

var testSecret = []byte("test-secret")

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Donation{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	users := repositories.NewUserRepository(db)
	donations := repositories.NewDonationRepository(db, users)

	r := gin.New()
	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(users, testSecret),
		Donations: handlers.NewDonationHandler(donations),
		Admin:     handlers.NewAdminHandler(users, donations, nil),
		Public:    handlers.NewPublicHandler(db),
		JWTSecret: testSecret,
	})
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, name, email string, role models.UserRole) (id, token string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	user := out["user"].(map[string]any)
	return user["id"].(string), out["token"].(string)
}

func postDonation(t *testing.T, r *gin.Engine, restaurantID, restaurantName string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/donations", gin.H{
		"food_item":       "Rice",
		"quantity":        "10kg",
		"pickup_address":  "12 Main St",
		"expiry_time":     time.Now().Add(6 * time.Hour).Format(time.RFC3339),
		"restaurant_id":   restaurantID,
		"restaurant_name": restaurantName,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	donation := decode(t, w)["donation"].(map[string]any)
	return donation["id"].(string)
}

func TestAuthEndpoints(t *testing.T) {
	r, _ := setupServer(t)

	t.Run("register issues a token", func(t *testing.T) {
		id, token := registerUser(t, r, "Spice Garden", "owner@spice.example", models.RoleRestaurant)
		assert.NotEmpty(t, id)
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"name":     "Impostor",
			"email":    "owner@spice.example",
			"password": "secret123",
			"role":     "ngo",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login with the right password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email":    "owner@spice.example",
			"password": "secret123",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, decode(t, w)["token"])
	})

	t.Run("login with a wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email":    "owner@spice.example",
			"password": "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDonationEndpoints(t *testing.T) {
	r, _ := setupServer(t)
	restID, _ := registerUser(t, r, "Spice Garden", "owner@spice.example", models.RoleRestaurant)
	ngoID, _ := registerUser(t, r, "Helpers Inc", "hello@helpers.example", models.RoleNGO)

	t.Run("posting a donation", func(t *testing.T) {
		id := postDonation(t, r, restID, "Spice Garden")
		assert.NotEmpty(t, id)
	})

	t.Run("malformed restaurant id is a 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/donations", gin.H{
			"food_item":       "Rice",
			"quantity":        "10kg",
			"pickup_address":  "12 Main St",
			"expiry_time":     time.Now().Add(time.Hour).Format(time.RFC3339),
			"restaurant_id":   "not-a-uuid",
			"restaurant_name": "Spice Garden",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid ID", decode(t, w)["error"])
	})

	t.Run("ngo cannot be the posting restaurant", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/donations", gin.H{
			"food_item":       "Rice",
			"quantity":        "10kg",
			"pickup_address":  "12 Main St",
			"expiry_time":     time.Now().Add(time.Hour).Format(time.RFC3339),
			"restaurant_id":   ngoID,
			"restaurant_name": "Helpers Inc",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid restaurant user", decode(t, w)["error"])
	})

	t.Run("claim and double-claim", func(t *testing.T) {
		id := postDonation(t, r, restID, "Spice Garden")
		w := doJSON(t, r, http.MethodPost, "/donations/"+id+"/claim", gin.H{
			"user_id":   ngoID,
			"user_name": "Helpers Inc",
			"role":      "ngo",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		donation := decode(t, w)["donation"].(map[string]any)
		assert.Equal(t, "claimed", donation["status"])
		assert.Equal(t, "Ngo: Helpers Inc", donation["claimed_by"])

		w = doJSON(t, r, http.MethodPost, "/donations/"+id+"/claim", gin.H{
			"user_id":   ngoID,
			"user_name": "Helpers Inc",
			"role":      "ngo",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("deliver without a claim", func(t *testing.T) {
		id := postDonation(t, r, restID, "Spice Garden")
		w := doJSON(t, r, http.MethodPost, "/donations/"+id+"/deliver", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		donation := decode(t, w)["donation"].(map[string]any)
		assert.Equal(t, "delivered", donation["status"])
	})

	t.Run("patch edits only the supplied fields", func(t *testing.T) {
		id := postDonation(t, r, restID, "Spice Garden")
		w := doJSON(t, r, http.MethodPatch, "/donations/"+id, gin.H{
			"quantity": "5kg",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		donation := decode(t, w)["donation"].(map[string]any)
		assert.Equal(t, "5kg", donation["quantity"])
		assert.Equal(t, "Rice", donation["food_item"])
		assert.Equal(t, "available", donation["status"])
	})

	t.Run("exclude_claimed wins over an explicit status filter", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/donations?status=delivered&exclude_claimed=true", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		for _, item := range out["donations"].([]any) {
			assert.Equal(t, "available", item.(map[string]any)["status"])
		}
	})

	t.Run("delete then lookup", func(t *testing.T) {
		id := postDonation(t, r, restID, "Spice Garden")
		w := doJSON(t, r, http.MethodDelete, "/donations/"+id, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])

		w = doJSON(t, r, http.MethodDelete, "/donations/"+id, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminOverview(t *testing.T) {
	r, _ := setupServer(t)
	restID, restToken := registerUser(t, r, "Spice Garden", "owner@spice.example", models.RoleRestaurant)
	_, adminToken := registerUser(t, r, "Ops", "ops@resqfood.example", models.RoleAdmin)
	postDonation(t, r, restID, "Spice Garden")

	t.Run("requires a token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/admin/overview", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires the admin role", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/admin/overview", nil, restToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reports aggregate counts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/admin/overview", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		out := decode(t, w)
		assert.Equal(t, float64(1), out["restaurants"])
		assert.Equal(t, float64(1), out["admins"])
		assert.Equal(t, float64(1), out["donations"])
		assert.Equal(t, float64(1), out["available"])
		assert.Equal(t, float64(0), out["claimed"])
	})
}
