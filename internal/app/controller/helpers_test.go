package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testJWTSecret = "test-secret"
	testAdminKey  = "test-admin-key"
	testPassword  = "Secret@Pass1"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

// setupTestEnv wires the full HTTP surface against an in-memory
// database, mirroring the production route table.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour, 30*time.Minute, testAdminKey)
	storeService := service.NewStoreService(testDB, storeRepo, userRepo, ratingRepo)
	ratingService := service.NewRatingService(testDB, ratingRepo)
	userService := service.NewUserService(testDB, userRepo, storeRepo, ratingRepo)

	authController := NewAuthController(authService)
	storeController := NewStoreController(storeService, ratingService)
	ownerController := NewOwnerController(storeService)
	userController := NewUserController(userService)

	authMiddleware := middleware.NewAuthMiddleware(testJWTSecret)

	router := gin.New()
	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/login/admin", authController.AdminLogin)
	auth.PUT("/update-password", authMiddleware.Authenticate(), authController.UpdatePassword)

	stores := api.Group("/stores")
	stores.GET("", storeController.ListStores)
	stores.GET("/stats", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), userController.Stats)
	owner := stores.Group("/owner")
	owner.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleStoreOwner))
	owner.GET("/dashboard", ownerController.Dashboard)
	owner.POST("", ownerController.CreateStore)
	owner.PUT("/:id", ownerController.UpdateStore)
	owner.DELETE("/:id", ownerController.DeleteStore)
	stores.POST("/:id/rate", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleUser), storeController.RateStore)
	stores.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), storeController.CreateStore)
	stores.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), storeController.UpdateStore)
	stores.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), storeController.DeleteStore)

	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin))
	users.GET("", userController.ListUsers)
	users.POST("", userController.CreateUser)
	users.PUT("/:id", userController.UpdateUser)
	users.DELETE("/:id", userController.DeleteUser)

	api.GET("/stats", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), userController.Stats)

	return &testEnv{router: router, db: testDB}
}

// seedAccount inserts a user directly and returns it with a valid token.
func (e *testEnv) seedAccount(t *testing.T, name, email string, role model.UserRole) (*model.User, string) {
	t.Helper()

	hashed, err := util.HashPassword(testPassword)
	require.NoError(t, err)

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      "100 Test Street, Testville",
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), testJWTSecret, time.Hour)
	require.NoError(t, err)

	return user, token
}

func (e *testEnv) seedStore(t *testing.T, name string, ownerID uint) *model.Store {
	t.Helper()

	store := &model.Store{
		Name:    name,
		Address: "200 Commerce Road, Testville",
		OwnerID: ownerID,
	}
	require.NoError(t, e.db.Create(store).Error)
	return store
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
