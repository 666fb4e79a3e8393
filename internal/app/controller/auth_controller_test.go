package controller

import (
	"net/http"
	"testing"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Signup_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "POST", "/api/auth/signup", "", SignupRequest{
		Name:     "Johnathan Maxwell Spencer III",
		Email:    "john@example.com",
		Password: "Secret@Pass1",
		Address:  "42 Baker Street",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", response["message"])
	assert.NotEmpty(t, response["token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "john@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
}

func TestAuthController_Signup_WeakPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "POST", "/api/auth/signup", "", SignupRequest{
		Name:     "Johnathan Maxwell Spencer III",
		Email:    "john@example.com",
		Password: "password",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_PASSWORD")
}

func TestAuthController_Signup_NameTooShort(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "POST", "/api/auth/signup", "", SignupRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "Secret@Pass1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_NAME")
}

func TestAuthController_Signup_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAccount(t, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)

	w := env.request(t, "POST", "/api/auth/signup", "", SignupRequest{
		Name:     "Alexandra Whitfield Montgomery",
		Email:    "john@example.com",
		Password: "Secret@Pass1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestAuthController_Login(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAccount(t, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)

	t.Run("Success", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login", "", LoginRequest{
			Email:    "john@example.com",
			Password: testPassword,
		})

		require.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.NotEmpty(t, response["token"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login", "", LoginRequest{
			Email:    "john@example.com",
			Password: "Wrong@Pass1",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("Role mismatch", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login", "", LoginRequest{
			Email:    "john@example.com",
			Password: testPassword,
			Role:     "store_owner",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_WRONG_ROLE")
	})
}

func TestAuthController_AdminLogin(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAccount(t, "Administrative Operator Account", "admin@example.com", model.RoleAdmin)

	t.Run("Success", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login/admin", "", AdminLoginRequest{
			Email:    "admin@example.com",
			Password: testPassword,
			AdminKey: testAdminKey,
		})

		require.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.NotEmpty(t, response["token"])
	})

	t.Run("Wrong admin key", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login/admin", "", AdminLoginRequest{
			Email:    "admin@example.com",
			Password: testPassword,
			AdminKey: "wrong-key",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_INVALID_ADMIN_KEY")
	})
}

func TestAuthController_UpdatePassword(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.seedAccount(t, "Johnathan Maxwell Spencer III", "john@example.com", model.RoleUser)

	t.Run("Requires authentication", func(t *testing.T) {
		w := env.request(t, "PUT", "/api/auth/update-password", "", UpdatePasswordRequest{
			OldPassword: testPassword,
			NewPassword: "Updated@Pass1",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong old password", func(t *testing.T) {
		w := env.request(t, "PUT", "/api/auth/update-password", token, UpdatePasswordRequest{
			OldPassword: "Wrong@Pass1",
			NewPassword: "Updated@Pass1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_WRONG_PASSWORD")
	})

	t.Run("Success", func(t *testing.T) {
		w := env.request(t, "PUT", "/api/auth/update-password", token, UpdatePasswordRequest{
			OldPassword: testPassword,
			NewPassword: "Updated@Pass1",
		})
		require.Equal(t, http.StatusOK, w.Code)

		// Old password no longer works.
		login := env.request(t, "POST", "/api/auth/login", "", LoginRequest{
			Email:    "john@example.com",
			Password: testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, login.Code)
	})
}
