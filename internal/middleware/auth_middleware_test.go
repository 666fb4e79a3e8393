package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthTestRouter(t *testing.T, roles ...model.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(testSecret)

	router := gin.New()
	handlers := []gin.HandlerFunc{m.Authenticate()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/protected", handlers...)

	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router := setupAuthTestRouter(t)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := setupAuthTestRouter(t)

	for _, header := range []string{"sometoken", "Basic abc", "Bearer"} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router := setupAuthTestRouter(t)

	token, err := util.GenerateToken(7, "user@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router := setupAuthTestRouter(t)

	token, err := util.GenerateToken(7, "user@example.com", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	router := setupAuthTestRouter(t)

	token, err := util.GenerateToken(7, "user@example.com", "user", "other-secret", time.Hour)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []model.UserRole
		wantCode int
	}{
		{"Admin passes admin gate", "admin", []model.UserRole{model.RoleAdmin}, http.StatusOK},
		{"User fails admin gate", "user", []model.UserRole{model.RoleAdmin}, http.StatusForbidden},
		{"Owner fails admin gate", "store_owner", []model.UserRole{model.RoleAdmin}, http.StatusForbidden},
		{"Any listed role passes", "store_owner", []model.UserRole{model.RoleAdmin, model.RoleStoreOwner}, http.StatusOK},
		{"Forged role never matches", "root", []model.UserRole{model.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthTestRouter(t, tt.required...)

			token, err := util.GenerateToken(7, "user@example.com", tt.role, testSecret, time.Hour)
			require.NoError(t, err)

			w := doRequest(router, "Bearer "+token)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
