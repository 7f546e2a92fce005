package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("duplicate record")
	ErrLastAdmin     = errors.New("last active admin")
	ErrHasDependents = errors.New("record has dependents")
	ErrForeignKey    = errors.New("referenced record does not exist")
)

// translate maps gorm's error values onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	default:
		return err
	}
}

// likeEscaper neutralizes LIKE wildcards in user input. Queries pair it with
// ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
