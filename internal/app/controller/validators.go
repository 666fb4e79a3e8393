package controller

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ratehub/ratehub-backend/pkg/util"
)

// Registers the password-policy tag with gin's binding validator so
// request structs can declare it directly.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return util.ValidPassword(fl.Field().String())
		})
	}
}
