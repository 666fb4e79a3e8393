package repository

import (
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// UserFilter narrows and orders the admin user listing.
type UserFilter struct {
	Search string
	Sort   string
	Order  string
}

// UserView is a user row joined with the rating aggregate of the store
// the user owns. Rating is nil for accounts that own no store.
type UserView struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Role      model.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	StoreID   *uint          `json:"store_id,omitempty"`
	StoreName *string        `json:"store_name,omitempty"`
	Rating    *float64       `json:"rating"`
}

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByEmailAndRole(email string, role model.UserRole) (*model.User, error)
	Update(user *model.User) error
	FindAll(filter UserFilter) ([]UserView, error)
	Count() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userSortFields whitelists sortable columns. Anything else falls back
// to name so query parameters can never inject expressions.
var userSortFields = map[string]string{
	"name":       "users.name",
	"email":      "users.email",
	"address":    "users.address",
	"role":       "users.role",
	"rating":     "rating",
	"created_at": "users.created_at",
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailAndRole(email string, role model.UserRole) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ? AND role = ?", email, role).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

// FindAll returns all users with each store_owner's store and its live
// rating average. Plain users and admins carry a NULL aggregate.
func (r *userRepository) FindAll(filter UserFilter) ([]UserView, error) {
	logger.Debug("Finding users", map[string]interface{}{
		"search": filter.Search,
		"sort":   filter.Sort,
		"order":  filter.Order,
	})

	query := r.db.Model(&model.User{}).
		Select("users.id, users.name, users.email, users.address, users.role, users.created_at, " +
			"stores.id AS store_id, stores.name AS store_name, " +
			"ROUND(AVG(ratings.value), 1) AS rating").
		Joins("LEFT JOIN stores ON stores.owner_id = users.id").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("users.id, users.name, users.email, users.address, users.role, users.created_at, stores.id, stores.name")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(users.name) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?) OR LOWER(users.address) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	query = query.Order(orderClause(userSortFields, filter.Sort, filter.Order))

	var views []UserView
	if err := query.Scan(&views).Error; err != nil {
		logger.Error("Failed to find users", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	return views, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

// orderClause builds an ORDER BY from whitelisted fields only; unknown
// sort fields and orders fail closed to the first whitelist entry
// ascending.
func orderClause(whitelist map[string]string, sort, order string) string {
	column, ok := whitelist[sort]
	if !ok {
		column = whitelist["name"]
	}
	direction := "ASC"
	if order == "desc" || order == "DESC" {
		direction = "DESC"
	}
	return column + " " + direction
}
