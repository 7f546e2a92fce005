package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 10

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrMalformedHash    = errors.New("malformed password hash")
)

// PasswordHasher hashes and checks passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps cost into bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the bcrypt work factor in use.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash generates a salted bcrypt digest from a plain text password
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// Compare returns nil on match, ErrPasswordMismatch on mismatch and a wrapped
// ErrMalformedHash when the digest cannot be read.
func (h *PasswordHasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

// Verify is Compare collapsed to a boolean. A malformed digest never matches.
func (h *PasswordHasher) Verify(hashedPassword, password string) bool {
	return h.Compare(hashedPassword, password) == nil
}
