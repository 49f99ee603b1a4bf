package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/saas-starter-api/internal/database"
	"github.com/yukikurage/saas-starter-api/internal/id"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) (repository.Store, *gorm.DB) {
	t.Helper()
	require.NoError(t, id.Init(1))

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return repository.NewStore(db), db
}

func createTestUser(t *testing.T, store repository.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test User", PasswordHash: "hashed"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func addTestMember(t *testing.T, store repository.Store, orgID, userID int64, role models.Role) *models.OrganizationMembership {
	t.Helper()
	m := &models.OrganizationMembership{OrganizationID: orgID, UserID: userID, Role: role}
	require.NoError(t, store.Memberships().Create(context.Background(), m))
	return m
}

func membershipOf(t *testing.T, store repository.Store, orgID, userID int64) *models.OrganizationMembership {
	t.Helper()
	m, err := store.Memberships().Find(context.Background(), orgID, userID)
	require.NoError(t, err)
	return m
}
