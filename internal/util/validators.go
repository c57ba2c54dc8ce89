package util

import (
	"blog-backend/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidatePostStatus checks that a string field holds a known post status.
func ValidatePostStatus(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return model.PostStatus(s).Valid()
}
