package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
)

// UserController serves the admin user-management surface.
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
}

// ListUsers returns all users; store owners carry their store and its
// average rating. Admin only.
// GET /api/users?search=&sort=&order=
func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.UserFilter{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}

	users, err := ctrl.userService.ListUsers(filter)
	if err != nil {
		log.Error("Failed to list users", err, map[string]interface{}{
			"search": filter.Search,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser creates an account with any role. Admin only.
// POST /api/users
func (ctrl *UserController) CreateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name, email and password are required")
		return
	}

	user, err := ctrl.userService.CreateUser(req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "User already exists")
			return
		}
		log.Error("User creation failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userPayload(user),
	})
}

// UpdateUser applies a partial update to any account. Admin only.
// PUT /api/users/:id
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid input")
		return
	}

	user, err := ctrl.userService.UpdateUser(userID, service.UserMutation{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("User update failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    userPayload(user),
	})
}

// DeleteUser removes an account along with its ratings and any owned
// store. Admin only.
// DELETE /api/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if callerID, ok := middleware.GetUserID(c); ok && callerID == userID {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "You cannot delete your own account")
		return
	}

	if err := ctrl.userService.DeleteUser(userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("User deletion failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// Stats returns the platform counters for the admin dashboard.
// GET /api/stats
func (ctrl *UserController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.userService.Stats()
	if err != nil {
		log.Error("Failed to load stats", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
