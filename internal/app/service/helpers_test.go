package service

import (
	"testing"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Secret@Pass1"

// seedUser inserts an account directly, bypassing the service layer, so
// tests can arrange any role without going through signup rules.
func seedUser(t *testing.T, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()

	hashed, err := util.HashPassword(testPassword)
	require.NoError(t, err)

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      "100 Test Street, Testville",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedStore(t *testing.T, db *gorm.DB, name string, ownerID uint) *model.Store {
	t.Helper()

	store := &model.Store{
		Name:    name,
		Address: "200 Commerce Road, Testville",
		OwnerID: ownerID,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedRating(t *testing.T, db *gorm.DB, storeID, userID uint, value int) *model.Rating {
	t.Helper()

	rating := &model.Rating{StoreID: storeID, UserID: userID, Value: value}
	require.NoError(t, db.Create(rating).Error)
	return rating
}
