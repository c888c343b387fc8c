package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{7,20}$`)
	pinRe   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// RegisterValidators adds the "phone" and "pin" tags to gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return pinRe.MatchString(fl.Field().String())
	})
}
