package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"healthcare-admin-api/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)
	registerOnce sync.Once
)

// RegisterValidators adds the custom binding tags used by request structs.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("wallet", func(fl validator.FieldLevel) bool {
			return service.IsWalletAddress(fl.Field().String())
		})
	})
}

// bindErrorMessage turns a binding failure into a client message.
func bindErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return strings.Join(msgs, "; ")
	}
	return "Invalid request body"
}

func fieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "phone":
		return field + " must be a valid phone number"
	case "wallet":
		return field + " must be a 0x-prefixed 40 character hex address"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
