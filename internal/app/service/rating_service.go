package service

import (
	"errors"
	"math"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidRatingValue = errors.New("rating must be 1-5")

type RatingService interface {
	Submit(userID, storeID uint, value int) (float64, error)
}

type ratingService struct {
	db         *gorm.DB
	ratingRepo repository.RatingRepository
}

func NewRatingService(db *gorm.DB, ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{
		db:         db,
		ratingRepo: ratingRepo,
	}
}

// Submit records or overwrites the caller's rating for a store and
// returns the store's new average. The upsert, the recompute and the
// cached-column write share one transaction; the composite unique index
// on (store_id, user_id) rejects a duplicate insert if two requests
// from the same user race past the lookup.
func (s *ratingService) Submit(userID, storeID uint, value int) (float64, error) {
	logger.Info("Rating submission", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
		"value":    value,
	})

	if value < 1 || value > 5 {
		return 0, ErrInvalidRatingValue
	}

	var avg float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var store model.Store
		if err := tx.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}

		var rating model.Rating
		err := tx.Where("store_id = ? AND user_id = ?", storeID, userID).First(&rating).Error
		switch {
		case err == nil:
			rating.Value = value
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = model.Rating{StoreID: storeID, UserID: userID, Value: value}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// Unweighted mean over whatever rows exist now. A store can
		// never reach this point with zero ratings, but COALESCE keeps
		// the query total either way.
		var mean float64
		err = tx.Model(&model.Rating{}).
			Where("store_id = ?", storeID).
			Select("COALESCE(AVG(value), 0)").
			Scan(&mean).Error
		if err != nil {
			return err
		}

		avg = roundToOneDecimal(mean)
		return tx.Model(&model.Store{}).
			Where("id = ?", storeID).
			Update("rating", avg).Error
	})
	if err != nil {
		logger.Warn("Rating submission failed", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
			"error":    err.Error(),
		})
		return 0, err
	}

	logger.Info("Rating submitted", map[string]interface{}{
		"user_id":    userID,
		"store_id":   storeID,
		"avg_rating": avg,
	})
	return avg, nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
