package scheduler

import (
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RatingScheduler periodically recomputes every store's cached rating
// column from the ratings table. The rating service keeps the column
// current on each submission; this job repairs any drift, e.g. after a
// manual data fix or a crashed transaction.
type RatingScheduler struct {
	cron       *cron.Cron
	ratingRepo repository.RatingRepository
}

func NewRatingScheduler(ratingRepo repository.RatingRepository) *RatingScheduler {
	return &RatingScheduler{
		cron:       cron.New(),
		ratingRepo: ratingRepo,
	}
}

func (s *RatingScheduler) Start() error {
	// Hourly, on the hour.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled rating reconciliation", nil)

		updated, err := s.ratingRepo.ReconcileAverages()
		if err != nil {
			logger.Error("Rating reconciliation failed", err, nil)
			return
		}

		logger.Info("Rating reconciliation completed", map[string]interface{}{
			"stores_updated": updated,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for rating reconciliation", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Rating scheduler started (hourly)", nil)

	return nil
}

func (s *RatingScheduler) Stop() {
	logger.Info("Stopping rating scheduler...", nil)
	s.cron.Stop()
	logger.Info("Rating scheduler stopped", nil)
}
