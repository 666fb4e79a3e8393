package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	AdminKey string `json:"adminKey" binding:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"address": user.Address,
		"role":    user.Role,
	}
}

// Signup handles self-registration. Every account created here is a
// normal user.
// POST /api/auth/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindingError(c, err)
		return
	}

	user, token, err := ctrl.authService.Register(req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Signup failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "User already exists")
			return
		}
		log.Error("Signup failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload(user),
	})
}

// Login authenticates a user or store owner and issues a bearer token.
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn("Login failed", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid credentials")
		case errors.Is(err, service.ErrWrongRole):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthWrongRole, "Account role does not match")
		default:
			log.Error("Login failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// AdminLogin authenticates an admin. The shared admin key must match
// before credentials are even considered.
// POST /api/auth/login/admin
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email, password and admin key are required")
		return
	}

	user, token, err := ctrl.authService.AdminLogin(req.Email, req.Password, req.AdminKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAdminKey):
			log.Warn("Admin login failed: invalid admin key", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthInvalidAdminKey, "Invalid admin key")
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid credentials")
		default:
			log.Error("Admin login failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// UpdatePassword changes the authenticated user's password after
// verifying the old one.
// PUT /api/auth/update-password
func (ctrl *AuthController) UpdatePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Old and new passwords are required")
		return
	}

	err := ctrl.authService.UpdatePassword(userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.ValidationPassword, err.Error())
		case errors.Is(err, service.ErrWrongOldPassword):
			apperrors.BadRequest(c, apperrors.AuthWrongPassword, "Old password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		default:
			log.Error("Password update failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}
