// Package repository persists users, categories and products with gorm.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"adboard/internal/apperr"
)

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("already exists")

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
