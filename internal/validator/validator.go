// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateformat", validateDateFormat)
		_ = v.RegisterValidation("employment_status", validateEmploymentStatus)
	}
}

// validateDateFormat accepts strings in YYYY-MM-DD form. Empty strings pass;
// combine with "required" when the field is mandatory.
func validateDateFormat(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validateEmploymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "employed", "self_employed", "unemployed", "retired", "student":
		return true
	}
	return false
}
