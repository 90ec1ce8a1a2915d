package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resqfood-api/models"
)

// newTestDB opens an in-memory store. A single connection keeps every query
// on the same memory database and serializes concurrent writers.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Donation{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
