package repository

import (
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreFilter narrows and orders the public store listing. Name and
// Address match their own column; Search matches either.
type StoreFilter struct {
	Name    string
	Address string
	Search  string
	Sort    string
	Order   string
}

// StoreView is a store row with its rating aggregated live across the
// ratings table. The listing aggregates live rather than reading the
// cached column so freshly submitted ratings appear immediately.
type StoreView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	OwnerID   uint      `json:"owner_id"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type StoreRepository interface {
	Create(store *model.Store) error
	Update(store *model.Store) error
	FindByID(id uint) (*model.Store, error)
	FindByOwnerID(ownerID uint) (*model.Store, error)
	FindByIDAndOwner(id, ownerID uint) (*model.Store, error)
	FindAll(filter StoreFilter) ([]StoreView, error)
	Count() (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

var storeSortFields = map[string]string{
	"name":       "stores.name",
	"address":    "stores.address",
	"rating":     "rating",
	"created_at": "stores.created_at",
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":     store.Name,
		"owner_id": store.OwnerID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name":     store.Name,
			"owner_id": store.OwnerID,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return nil
}

func (r *storeRepository) Update(store *model.Store) error {
	logger.Debug("Updating store in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})

	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerID(ownerID uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByIDAndOwner scopes the lookup to the caller's own store. A store
// belonging to someone else surfaces as record-not-found, identical to
// a store that does not exist at all.
func (r *storeRepository) FindByIDAndOwner(id, ownerID uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindAll(filter StoreFilter) ([]StoreView, error) {
	logger.Debug("Finding stores", map[string]interface{}{
		"name":    filter.Name,
		"address": filter.Address,
		"search":  filter.Search,
		"sort":    filter.Sort,
		"order":   filter.Order,
	})

	query := r.db.Model(&model.Store{}).
		Select("stores.id, stores.name, stores.address, stores.owner_id, stores.created_at, " +
			"COALESCE(ROUND(AVG(ratings.value), 1), 0) AS rating").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id, stores.name, stores.address, stores.owner_id, stores.created_at")

	if filter.Name != "" {
		query = query.Where("LOWER(stores.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Address != "" {
		query = query.Where("LOWER(stores.address) LIKE LOWER(?)", "%"+filter.Address+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(stores.name) LIKE LOWER(?) OR LOWER(stores.address) LIKE LOWER(?)",
			pattern, pattern,
		)
	}

	query = query.Order(orderClause(storeSortFields, filter.Sort, filter.Order))

	var views []StoreView
	if err := query.Scan(&views).Error; err != nil {
		logger.Error("Failed to find stores", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	return views, nil
}

func (r *storeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Store{}).Count(&count).Error
	return count, err
}
