package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountCodePattern admits the characters an account code or code prefix may hold.
var accountCodePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func validateAccountCode(fl validator.FieldLevel) bool {
	return accountCodePattern.MatchString(fl.Field().String())
}

// registerValidators adds the custom binding tags to gin's validator engine.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("accountcode", validateAccountCode)
}
