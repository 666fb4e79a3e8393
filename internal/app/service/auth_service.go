package service

import (
	"errors"
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongRole          = errors.New("unauthorized role")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
)

type AuthService interface {
	Register(name, email, password, address string) (*model.User, string, error)
	Login(email, password, requestedRole string) (*model.User, string, error)
	AdminLogin(email, password, adminKey string) (*model.User, string, error)
	UpdatePassword(userID uint, oldPassword, newPassword string) error
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	userExpiry  time.Duration
	adminExpiry time.Duration
	adminKey    string
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	userExpiry, adminExpiry time.Duration,
	adminKey string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		userExpiry:  userExpiry,
		adminExpiry: adminExpiry,
		adminKey:    adminKey,
	}
}

// Register creates a normal user account. The role is always forced to
// user here; privileged accounts only come from an admin.
func (s *authService) Register(name, email, password, address string) (*model.User, string, error) {
	email = util.NormalizeEmail(email)

	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	if err := validateUserInput(name, email, password, address); err != nil {
		logger.Warn("Registration failed: invalid input", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, "", err
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Address:      address,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.userExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, token, nil
}

// Login authenticates a user or store_owner. When the caller requests a
// role, the stored role must match; a mismatch is a role failure, not a
// credential failure.
func (s *authService) Login(email, password, requestedRole string) (*model.User, string, error) {
	email = util.NormalizeEmail(email)

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if requestedRole != "" && string(user.Role) != requestedRole {
		logger.Warn("Login failed: role mismatch", map[string]interface{}{
			"email":          email,
			"requested_role": requestedRole,
		})
		return nil, "", ErrWrongRole
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.userExpiry)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, token, nil
}

// AdminLogin authenticates an admin account. The shared admin key is
// checked before any credential lookup, and the issued token carries
// the shorter admin expiry.
func (s *authService) AdminLogin(email, password, adminKey string) (*model.User, string, error) {
	email = util.NormalizeEmail(email)

	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	if s.adminKey == "" || adminKey != s.adminKey {
		logger.Warn("Admin login failed: invalid admin key", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrInvalidAdminKey
	}

	user, err := s.userRepo.FindByEmailAndRole(email, model.RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Admin login failed: no admin account", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Admin login failed: invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.adminExpiry)
	if err != nil {
		return nil, "", err
	}

	logger.Info("Admin logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, token, nil
}

// UpdatePassword verifies the old password before storing a hash of the
// new one. The new password must satisfy the same policy as signup.
func (s *authService) UpdatePassword(userID uint, oldPassword, newPassword string) error {
	logger.Info("Password update attempt", map[string]interface{}{
		"user_id": userID,
	})

	if !util.ValidPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.VerifyPassword(user.PasswordHash, oldPassword) {
		logger.Warn("Password update failed: wrong old password", map[string]interface{}{
			"user_id": userID,
		})
		return ErrWrongOldPassword
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	logger.Info("Password updated successfully", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
