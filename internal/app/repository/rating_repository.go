package repository

import (
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type RatingRepository interface {
	FindByStoreAndUser(storeID, userID uint) (*model.Rating, error)
	FindByStoreID(storeID uint) ([]model.Rating, error)
	Count() (int64, error)
	ReconcileAverages() (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) FindByStoreAndUser(storeID, userID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("store_id = ? AND user_id = ?", storeID, userID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByStoreID returns a store's ratings with rater identity loaded,
// newest first, for the owner dashboard.
func (r *ratingRepository) FindByStoreID(storeID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		logger.Error("Failed to find ratings for store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Count(&count).Error
	return count, err
}

// ReconcileAverages rewrites every store's cached rating from the live
// aggregate in one statement. Two concurrent rating submissions can
// leave the cached column one write behind; this closes that window on
// a schedule. Returns the number of store rows touched.
func (r *ratingRepository) ReconcileAverages() (int64, error) {
	result := r.db.Exec(
		"UPDATE stores SET rating = COALESCE(" +
			"(SELECT ROUND(AVG(ratings.value), 1) FROM ratings WHERE ratings.store_id = stores.id), 0)",
	)
	if result.Error != nil {
		logger.Error("Failed to reconcile store averages", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
