package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isURL(s string) bool {
	return validate.Var(s, "required,url") == nil
}

// trimmedOrNil turns blank optional strings into NULL.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
