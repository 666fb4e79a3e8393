package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// respondBindingError maps binding failures onto 400s, with a
// field-specific code where the failed validator tag identifies one.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "email":
			apperrors.BadRequest(c, apperrors.ValidationEmail, "Invalid email format")
			return
		case "strongpassword":
			apperrors.BadRequest(c, apperrors.ValidationPassword,
				"Password must be 8-16 chars, include 1 uppercase & 1 special char")
			return
		}
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid input")
}

// respondValidationError maps the shared input-rule errors onto 400s
// with field-specific codes. Returns false when err is not one of them.
func respondValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidName):
		apperrors.BadRequest(c, apperrors.ValidationName, err.Error())
	case errors.Is(err, service.ErrInvalidStoreName):
		apperrors.BadRequest(c, apperrors.ValidationName, err.Error())
	case errors.Is(err, service.ErrInvalidEmail):
		apperrors.BadRequest(c, apperrors.ValidationEmail, err.Error())
	case errors.Is(err, service.ErrInvalidAddress):
		apperrors.BadRequest(c, apperrors.ValidationAddress, err.Error())
	case errors.Is(err, service.ErrWeakPassword):
		apperrors.BadRequest(c, apperrors.ValidationPassword, err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		apperrors.BadRequest(c, apperrors.ValidationRole, err.Error())
	default:
		return false
	}
	return true
}
