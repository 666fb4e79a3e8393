package service

import (
	"testing"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRatingServiceTest(t *testing.T) (RatingService, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	ratingRepo := repository.NewRatingRepository(testDB)
	ratingService := NewRatingService(testDB, ratingRepo)

	return ratingService, testDB
}

func TestRatingService_Submit(t *testing.T) {
	ratingService, testDB := setupRatingServiceTest(t)

	owner := seedUser(t, testDB, "Olivia Penelope Harrington", "owner@example.com", model.RoleStoreOwner)
	rater1 := seedUser(t, testDB, "Johnathan Maxwell Spencer III", "user1@example.com", model.RoleUser)
	rater2 := seedUser(t, testDB, "Alexandra Whitfield Montgomery", "user2@example.com", model.RoleUser)
	store := seedStore(t, testDB, "Riverside Grocery and General Goods", owner.ID)

	avg, err := ratingService.Submit(rater1.ID, store.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	avg, err = ratingService.Submit(rater2.ID, store.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)

	// The cached column follows every submission.
	var reloaded model.Store
	require.NoError(t, testDB.First(&reloaded, store.ID).Error)
	assert.Equal(t, 4.5, reloaded.Rating)
}

func TestRatingService_Submit_OverwritesOwnRating(t *testing.T) {
	ratingService, testDB := setupRatingServiceTest(t)

	owner := seedUser(t, testDB, "Olivia Penelope Harrington", "owner@example.com", model.RoleStoreOwner)
	rater := seedUser(t, testDB, "Johnathan Maxwell Spencer III", "user@example.com", model.RoleUser)
	store := seedStore(t, testDB, "Riverside Grocery and General Goods", owner.ID)

	_, err := ratingService.Submit(rater.ID, store.ID, 3)
	require.NoError(t, err)

	avg, err := ratingService.Submit(rater.ID, store.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	// Still a single row for this (store, user) pair.
	var count int64
	require.NoError(t, testDB.Model(&model.Rating{}).
		Where("store_id = ? AND user_id = ?", store.ID, rater.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRatingService_Submit_ValueOutOfRange(t *testing.T) {
	ratingService, testDB := setupRatingServiceTest(t)

	owner := seedUser(t, testDB, "Olivia Penelope Harrington", "owner@example.com", model.RoleStoreOwner)
	rater := seedUser(t, testDB, "Johnathan Maxwell Spencer III", "user@example.com", model.RoleUser)
	store := seedStore(t, testDB, "Riverside Grocery and General Goods", owner.ID)

	for _, value := range []int{0, 6, -1} {
		_, err := ratingService.Submit(rater.ID, store.ID, value)
		assert.ErrorIs(t, err, ErrInvalidRatingValue)
	}

	// Nothing was written.
	var count int64
	require.NoError(t, testDB.Model(&model.Rating{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRatingService_Submit_StoreNotFound(t *testing.T) {
	ratingService, testDB := setupRatingServiceTest(t)

	rater := seedUser(t, testDB, "Johnathan Maxwell Spencer III", "user@example.com", model.RoleUser)

	_, err := ratingService.Submit(rater.ID, 9999, 4)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestRatingService_RoundsToOneDecimal(t *testing.T) {
	ratingService, testDB := setupRatingServiceTest(t)

	owner := seedUser(t, testDB, "Olivia Penelope Harrington", "owner@example.com", model.RoleStoreOwner)
	store := seedStore(t, testDB, "Riverside Grocery and General Goods", owner.ID)

	values := []int{5, 4, 4} // mean 4.333... -> 4.3
	for i, v := range values {
		rater := seedUser(t, testDB, "Alexandra Whitfield Montgomery", // name reused, emails differ
			string(rune('a'+i))+"@example.com", model.RoleUser)
		avg, err := ratingService.Submit(rater.ID, store.ID, v)
		require.NoError(t, err)
		if i == len(values)-1 {
			assert.Equal(t, 4.3, avg)
		}
	}
}
