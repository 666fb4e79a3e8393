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

type StoreController struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

func NewStoreController(storeService service.StoreService, ratingService service.RatingService) *StoreController {
	return &StoreController{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

type CreateStoreRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	OwnerEmail string `json:"ownerEmail" binding:"required,email"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

type RateStoreRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// ListStores returns all stores with their live average rating.
// Public, no token required.
// GET /api/stores?name=&address=&search=&sort=&order=
func (ctrl *StoreController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
		Order:   c.Query("order"),
	}

	stores, err := ctrl.storeService.ListStores(filter)
	if err != nil {
		log.Error("Failed to list stores", err, map[string]interface{}{
			"search": filter.Search,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// CreateStore creates a store for an existing store_owner account.
// Admin only.
// POST /api/stores
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name and owner email are required")
		return
	}

	store, err := ctrl.storeService.AdminCreateStore(req.Name, req.Address, req.OwnerEmail)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrOwnerNotFound):
			apperrors.NotFound(c, apperrors.StoreOwnerNotFound, "No store_owner found with this email")
		case errors.Is(err, service.ErrAlreadyOwnsStore):
			apperrors.BadRequest(c, apperrors.StoreAlreadyOwned, "This owner already has a store")
		default:
			log.Error("Store creation failed", err, map[string]interface{}{
				"owner_email": req.OwnerEmail,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store created successfully",
		"store":   store,
	})
}

// UpdateStore applies a partial update to any store. Admin only.
// PUT /api/stores/:id
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid input")
		return
	}

	store, err := ctrl.storeService.AdminUpdateStore(storeID, service.StoreMutation{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Store update failed", err, map[string]interface{}{
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

// DeleteStore removes a store and its ratings. Admin only.
// DELETE /api/stores/:id
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.AdminDeleteStore(storeID); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Store deletion failed", err, map[string]interface{}{
			"store_id": storeID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store deleted successfully",
	})
}

// RateStore records or overwrites the caller's 1-5 rating for a store
// and returns the store's new average. Normal users only.
// POST /api/stores/:id/rate
func (ctrl *StoreController) RateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.RatingInvalidValue, "Rating must be 1-5")
		return
	}

	avg, err := ctrl.ratingService.Submit(userID, storeID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRatingValue):
			apperrors.BadRequest(c, apperrors.RatingInvalidValue, "Rating must be 1-5")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		default:
			log.Error("Rating submission failed", err, map[string]interface{}{
				"store_id": storeID,
				"user_id":  userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Rating submitted successfully",
		"avgRating": avg,
	})
}
