package service

import (
	"errors"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm"
)

// UserMutation is a partial admin update; nil fields stay untouched.
// Password, when set, is re-validated and re-hashed.
type UserMutation struct {
	Name     *string
	Email    *string
	Password *string
	Address  *string
	Role     *string
}

// Stats is the admin dashboard counters.
type Stats struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

type UserService interface {
	ListUsers(filter repository.UserFilter) ([]repository.UserView, error)
	CreateUser(name, email, password, address, role string) (*model.User, error)
	UpdateUser(id uint, input UserMutation) (*model.User, error)
	DeleteUser(id uint) error
	Stats() (*Stats, error)
}

type userService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewUserService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
) UserService {
	return &userService{
		db:         db,
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *userService) ListUsers(filter repository.UserFilter) ([]repository.UserView, error) {
	return s.userRepo.FindAll(filter)
}

// CreateUser is the admin path: same validation as signup, but the role
// may be set explicitly. Empty role defaults to user.
func (s *userService) CreateUser(name, email, password, address, role string) (*model.User, error) {
	email = util.NormalizeEmail(email)

	logger.Info("Admin creating user", map[string]interface{}{
		"email": email,
		"role":  role,
	})

	if err := validateUserInput(name, email, password, address); err != nil {
		return nil, err
	}

	if role == "" {
		role = string(model.RoleUser)
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      address,
		Role:         model.UserRole(role),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created by admin", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    role,
	})
	return user, nil
}

func (s *userService) UpdateUser(id uint, input UserMutation) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if !util.ValidName(*input.Name) {
			return nil, ErrInvalidName
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		email := util.NormalizeEmail(*input.Email)
		if !util.ValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		user.Email = email
	}
	if input.Address != nil {
		if !util.ValidAddress(*input.Address) {
			return nil, ErrInvalidAddress
		}
		user.Address = *input.Address
	}
	if input.Role != nil {
		if !model.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = model.UserRole(*input.Role)
	}
	if input.Password != nil {
		if !util.ValidPassword(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := util.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated by admin", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// DeleteUser removes a user and everything hanging off them: the
// ratings they wrote, any store they own, and that store's ratings.
// One transaction, explicit deletes, no reliance on ORM hook ordering.
func (s *userService) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}

		var store model.Store
		err := tx.Where("owner_id = ?", id).First(&store).Error
		switch {
		case err == nil:
			if err := deleteStoreCascade(tx, store.ID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no owned store
		default:
			return err
		}

		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (s *userService) Stats() (*Stats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	stores, err := s.storeRepo.Count()
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.Count()
	if err != nil {
		return nil, err
	}
	return &Stats{Users: users, Stores: stores, Ratings: ratings}, nil
}
