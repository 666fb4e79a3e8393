package service

import (
	"testing"
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminKey = "test-admin-key"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(
		userRepo,
		"test-jwt-secret",
		time.Hour,
		30*time.Minute,
		testAdminKey,
	)

	return authService, testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		address  string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			userName: "Johnathan Maxwell Spencer III",
			email:    "john@example.com",
			password: "Secret@Pass1",
			address:  "42 Baker Street",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			userName: "Alexandra Whitfield Montgomery",
			email:    "john@example.com",
			password: "Secret@Pass1",
			address:  "",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "Name too short",
			userName: "John Smith",
			email:    "short@example.com",
			password: "Secret@Pass1",
			address:  "",
			wantErr:  ErrInvalidName,
		},
		{
			name:     "Weak password",
			userName: "Alexandra Whitfield Montgomery",
			email:    "weak@example.com",
			password: "password",
			address:  "",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "Invalid email",
			userName: "Alexandra Whitfield Montgomery",
			email:    "not-an-email",
			password: "Secret@Pass1",
			address:  "",
			wantErr:  ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Register(tt.userName, tt.email, tt.password, tt.address)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, token)

				claims, err := util.ValidateToken(token, "test-jwt-secret")
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, string(model.RoleUser), claims.Role)
			}
		})
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register(
		"Johnathan Maxwell Spencer III",
		"  John@Example.COM  ",
		"Secret@Pass1",
		"",
	)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestAuthService_Login(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	seedUser(t, testDB, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)
	seedUser(t, testDB, "Olivia Penelope Harrington", "owner@example.com", model.RoleStoreOwner)

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  error
	}{
		{
			name:     "Valid login without role",
			email:    "john@example.com",
			password: testPassword,
			wantErr:  nil,
		},
		{
			name:     "Valid login with matching role",
			email:    "owner@example.com",
			password: testPassword,
			role:     "store_owner",
			wantErr:  nil,
		},
		{
			name:     "Role mismatch",
			email:    "john@example.com",
			password: testPassword,
			role:     "store_owner",
			wantErr:  ErrWrongRole,
		},
		{
			name:     "Wrong password",
			email:    "john@example.com",
			password: "Wrong@Pass1",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Non-existing user",
			email:    "nobody@example.com",
			password: testPassword,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Login(tt.email, tt.password, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	seedUser(t, testDB, "Administrative Operator Account", "admin@example.com", model.RoleAdmin)
	seedUser(t, testDB, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)

	tests := []struct {
		name     string
		email    string
		password string
		adminKey string
		wantErr  error
	}{
		{
			name:     "Valid admin login",
			email:    "admin@example.com",
			password: testPassword,
			adminKey: testAdminKey,
			wantErr:  nil,
		},
		{
			name:     "Wrong admin key",
			email:    "admin@example.com",
			password: testPassword,
			adminKey: "wrong-key",
			wantErr:  ErrInvalidAdminKey,
		},
		{
			name:     "Non-admin account",
			email:    "john@example.com",
			password: testPassword,
			adminKey: testAdminKey,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Wrong password",
			email:    "admin@example.com",
			password: "Wrong@Pass1",
			adminKey: testAdminKey,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.AdminLogin(tt.email, tt.password, tt.adminKey)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, model.RoleAdmin, user.Role)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestAuthService_AdminLogin_NoKeyConfigured(t *testing.T) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	// Admin login must be impossible when no key is configured, even
	// with an empty key supplied.
	authService := NewAuthService(userRepo, "test-jwt-secret", time.Hour, 30*time.Minute, "")

	seedUser(t, testDB, "Administrative Operator Account", "admin@example.com", model.RoleAdmin)

	_, _, err = authService.AdminLogin("admin@example.com", testPassword, "")
	assert.ErrorIs(t, err, ErrInvalidAdminKey)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user := seedUser(t, testDB, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)

	t.Run("Wrong old password", func(t *testing.T) {
		err := authService.UpdatePassword(user.ID, "Wrong@Pass1", "Updated@Pass1")
		assert.ErrorIs(t, err, ErrWrongOldPassword)
	})

	t.Run("Weak new password", func(t *testing.T) {
		err := authService.UpdatePassword(user.ID, testPassword, "weak")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("Unknown user", func(t *testing.T) {
		err := authService.UpdatePassword(9999, testPassword, "Updated@Pass1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		err := authService.UpdatePassword(user.ID, testPassword, "Updated@Pass1")
		require.NoError(t, err)

		_, _, err = authService.Login("john@example.com", "Updated@Pass1", "")
		require.NoError(t, err)

		_, _, err = authService.Login("john@example.com", testPassword, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
