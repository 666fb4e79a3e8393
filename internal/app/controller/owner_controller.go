package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
)

// OwnerController serves the store_owner surface: the dashboard and the
// owner's self-service store management. Every handler scopes to the
// authenticated owner's own store.
type OwnerController struct {
	storeService service.StoreService
}

func NewOwnerController(storeService service.StoreService) *OwnerController {
	return &OwnerController{
		storeService: storeService,
	}
}

type OwnerCreateStoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// Dashboard returns the owner's store, its raters and its average.
// GET /api/stores/owner/dashboard
func (ctrl *OwnerController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	dashboard, err := ctrl.storeService.OwnerDashboard(ownerID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "You don't have a store yet")
			return
		}
		log.Error("Failed to load owner dashboard", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store":     dashboard.Store,
		"ratings":   dashboard.Ratings,
		"avgRating": dashboard.AvgRating,
	})
}

// CreateStore registers the owner's store. Each owner can have one.
// POST /api/stores/owner
func (ctrl *OwnerController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req OwnerCreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Store name is required")
		return
	}

	store, err := ctrl.storeService.OwnerCreateStore(ownerID, req.Name, req.Address)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrAlreadyOwnsStore) {
			apperrors.BadRequest(c, apperrors.StoreAlreadyOwned, "You already have a store")
			return
		}
		log.Error("Owner store creation failed", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store created successfully",
		"store":   store,
	})
}

// UpdateStore applies a partial update to the owner's own store.
// PUT /api/stores/owner/:id
func (ctrl *OwnerController) UpdateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid input")
		return
	}

	store, err := ctrl.storeService.OwnerUpdateStore(ownerID, storeID, service.StoreMutation{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrStoreNotFound) {
			// A store that exists but belongs to someone else looks the
			// same as one that doesn't exist.
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Owner store update failed", err, map[string]interface{}{
			"owner_id": ownerID,
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store updated successfully",
		"store":   store,
	})
}

// DeleteStore removes the owner's own store and its ratings.
// DELETE /api/stores/owner/:id
func (ctrl *OwnerController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.OwnerDeleteStore(ownerID, storeID); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Owner store deletion failed", err, map[string]interface{}{
			"owner_id": ownerID,
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store deleted successfully",
	})
}
