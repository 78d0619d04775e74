// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings that are empty after trimming whitespace
const TagNotBlank = "notblank"

// RegisterBindingValidators adds the custom rules to gin's validator engine.
// It is safe to call more than once.
func RegisterBindingValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return engine.RegisterValidation(TagNotBlank, NotBlank)
}

// NotBlank implements the notblank tag for string fields
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
