package service

import (
	"errors"
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrAlreadyOwnsStore = errors.New("you already have a store")
	ErrOwnerNotFound    = errors.New("no store_owner found with this email")
)

// StoreMutation is a partial update; nil fields are left untouched.
type StoreMutation struct {
	Name    *string
	Address *string
}

// RatingEntry is one dashboard row: who rated and what they gave.
type RatingEntry struct {
	ID        uint      `json:"id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	User      struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Dashboard is the owner's view of their store. AvgRating reads the
// cached column, which the rating service keeps current and the
// scheduler reconciles.
type Dashboard struct {
	Store     *model.Store  `json:"store"`
	Ratings   []RatingEntry `json:"ratings"`
	AvgRating float64       `json:"avgRating"`
}

type StoreService interface {
	ListStores(filter repository.StoreFilter) ([]repository.StoreView, error)
	AdminCreateStore(name, address, ownerEmail string) (*model.Store, error)
	AdminUpdateStore(storeID uint, input StoreMutation) (*model.Store, error)
	AdminDeleteStore(storeID uint) error
	OwnerCreateStore(ownerID uint, name, address string) (*model.Store, error)
	OwnerUpdateStore(ownerID, storeID uint, input StoreMutation) (*model.Store, error)
	OwnerDeleteStore(ownerID, storeID uint) error
	OwnerDashboard(ownerID uint) (*Dashboard, error)
}

type storeService struct {
	db         *gorm.DB
	storeRepo  repository.StoreRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
}

func NewStoreService(
	db *gorm.DB,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
) StoreService {
	return &storeService{
		db:         db,
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *storeService) ListStores(filter repository.StoreFilter) ([]repository.StoreView, error) {
	return s.storeRepo.FindAll(filter)
}

// AdminCreateStore resolves ownerEmail to a store_owner account and
// creates the store in one transaction, so a failed owner lookup or a
// lost owner-uniqueness race leaves no partial rows behind.
func (s *storeService) AdminCreateStore(name, address, ownerEmail string) (*model.Store, error) {
	logger.Info("Admin creating store", map[string]interface{}{
		"name":        name,
		"owner_email": ownerEmail,
	})

	if err := validateStoreInput(name, address); err != nil {
		return nil, err
	}

	// Emails are stored normalized, so the lookup must match.
	email := util.NormalizeEmail(ownerEmail)

	var store *model.Store
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var owner model.User
		err := tx.Where("email = ? AND role = ?", email, model.RoleStoreOwner).First(&owner).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOwnerNotFound
			}
			return err
		}

		var existing model.Store
		err = tx.Where("owner_id = ?", owner.ID).First(&existing).Error
		if err == nil {
			return ErrAlreadyOwnsStore
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		store = &model.Store{Name: name, Address: address, OwnerID: owner.ID}
		if err := tx.Create(store).Error; err != nil {
			return mapOwnerUnique(err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Admin store creation failed", map[string]interface{}{
			"owner_email": ownerEmail,
			"error":       err.Error(),
		})
		return nil, err
	}

	logger.Info("Store created by admin", map[string]interface{}{
		"store_id": store.ID,
		"owner_id": store.OwnerID,
	})
	return store, nil
}

// AdminUpdateStore applies a partial update. An address change is
// copied onto the owner's profile as well, keeping the two in sync (a
// deliberate denormalization carried over from the product design).
func (s *storeService) AdminUpdateStore(storeID uint, input StoreMutation) (*model.Store, error) {
	var store *model.Store
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var st model.Store
		if err := tx.First(&st, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}

		if err := applyStoreMutation(&st, input); err != nil {
			return err
		}
		if err := tx.Save(&st).Error; err != nil {
			return err
		}

		if input.Address != nil {
			if err := tx.Model(&model.User{}).
				Where("id = ?", st.OwnerID).
				Update("address", *input.Address).Error; err != nil {
				return err
			}
		}

		store = &st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Store updated by admin", map[string]interface{}{
		"store_id": store.ID,
	})
	return store, nil
}

// AdminDeleteStore removes a store and its ratings in one transaction.
func (s *storeService) AdminDeleteStore(storeID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var store model.Store
		if err := tx.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}
		return deleteStoreCascade(tx, store.ID)
	})
	if err != nil {
		return err
	}

	logger.Info("Store deleted by admin", map[string]interface{}{
		"store_id": storeID,
	})
	return nil
}

// OwnerCreateStore enforces one store per owner. The check-then-create
// runs in a transaction and the unique index on owner_id rejects the
// race where two concurrent requests both pass the check.
func (s *storeService) OwnerCreateStore(ownerID uint, name, address string) (*model.Store, error) {
	logger.Info("Owner creating store", map[string]interface{}{
		"owner_id": ownerID,
	})

	if err := validateStoreInput(name, address); err != nil {
		return nil, err
	}

	var store *model.Store
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Store
		err := tx.Where("owner_id = ?", ownerID).First(&existing).Error
		if err == nil {
			return ErrAlreadyOwnsStore
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		store = &model.Store{Name: name, Address: address, OwnerID: ownerID}
		if err := tx.Create(store).Error; err != nil {
			return mapOwnerUnique(err)
		}

		// Keep the owner's profile address in sync with the store.
		if address != "" {
			if err := tx.Model(&model.User{}).
				Where("id = ?", ownerID).
				Update("address", address).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("Owner store creation failed", map[string]interface{}{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
		return nil, err
	}

	logger.Info("Store created by owner", map[string]interface{}{
		"store_id": store.ID,
		"owner_id": ownerID,
	})
	return store, nil
}

func (s *storeService) OwnerUpdateStore(ownerID, storeID uint, input StoreMutation) (*model.Store, error) {
	var store *model.Store
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var st model.Store
		err := tx.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&st).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}

		if err := applyStoreMutation(&st, input); err != nil {
			return err
		}
		if err := tx.Save(&st).Error; err != nil {
			return err
		}

		if input.Address != nil {
			if err := tx.Model(&model.User{}).
				Where("id = ?", ownerID).
				Update("address", *input.Address).Error; err != nil {
				return err
			}
		}

		store = &st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Store updated by owner", map[string]interface{}{
		"store_id": storeID,
		"owner_id": ownerID,
	})
	return store, nil
}

func (s *storeService) OwnerDeleteStore(ownerID, storeID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var store model.Store
		err := tx.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}
		return deleteStoreCascade(tx, store.ID)
	})
	if err != nil {
		return err
	}

	logger.Info("Store deleted by owner", map[string]interface{}{
		"store_id": storeID,
		"owner_id": ownerID,
	})
	return nil
}

func (s *storeService) OwnerDashboard(ownerID uint) (*Dashboard, error) {
	store, err := s.storeRepo.FindByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.FindByStoreID(store.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]RatingEntry, 0, len(ratings))
	for _, r := range ratings {
		entry := RatingEntry{
			ID:        r.ID,
			Value:     r.Value,
			CreatedAt: r.CreatedAt,
		}
		entry.User.ID = r.User.ID
		entry.User.Name = r.User.Name
		entry.User.Email = r.User.Email
		entries = append(entries, entry)
	}

	return &Dashboard{
		Store:     store,
		Ratings:   entries,
		AvgRating: store.Rating,
	}, nil
}

func applyStoreMutation(store *model.Store, input StoreMutation) error {
	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	return validateStoreInput(store.Name, store.Address)
}

// deleteStoreCascade removes a store's ratings then the store itself,
// inside the caller's transaction.
func deleteStoreCascade(tx *gorm.DB, storeID uint) error {
	if err := tx.Where("store_id = ?", storeID).Delete(&model.Rating{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Store{}, storeID).Error
}

// mapOwnerUnique converts a lost owner-uniqueness race, surfaced as a
// unique-constraint violation, into the domain error.
func mapOwnerUnique(err error) error {
	if apperrors.ParseError(err, "store").Code == apperrors.StoreAlreadyOwned {
		return ErrAlreadyOwnsStore
	}
	return err
}
